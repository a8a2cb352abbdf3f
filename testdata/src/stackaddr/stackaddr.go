package stackaddr

import "unsafe"

func escapingLocal() unsafe.Pointer {
	v := int64(42)
	return unsafe.Pointer(&v) // want `returning the address of a local variable as an unsafe pointer \(the storage is released at function exit, making the pointer immediately invalid\)`
}

func escapingAsUintptr() uintptr {
	v := int64(42)
	return uintptr(unsafe.Pointer(&v)) // want `returning the address of a local variable as an unsafe pointer \(the storage is released at function exit, making the pointer immediately invalid\)`
}

func escapingFromBranch(cond bool) unsafe.Pointer {
	if cond {
		v := int64(1)
		return unsafe.Pointer(&v) // want `returning the address of a local variable as an unsafe pointer \(the storage is released at function exit, making the pointer immediately invalid\)`
	}
	return nil
}

// Only variables declared inside the body are considered; not reported.
func paramAddress(v int64) unsafe.Pointer {
	return unsafe.Pointer(&v)
}

// A plain Go pointer keeps the variable alive; not reported.
func plainPointer() *int64 {
	v := int64(42)
	return &v
}
