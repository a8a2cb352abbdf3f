package falliblealloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func uncheckedSize(n uintptr) unsafe.Pointer {
	return unix.Malloc(n) // want `allocation size is not validated \(bound-check the size before allocating\)`
}

func uncheckedResult(n uintptr) int32 {
	if n > 1<<20 {
		return 0
	}
	p := unix.Malloc(n)
	return *(*int32)(p) // want `allocation result may be nil when dereferenced \(check the result against nil before use\)`
}

func checkedWithHelper(n uintptr) int32 {
	if !validSize(n) {
		return 0
	}
	p := unix.Malloc(n)
	if p == nil {
		return 0
	}
	return *(*int32)(p)
}

func constantSize() unsafe.Pointer {
	// Constant sizes are not traced.
	return unix.Calloc(1, 64)
}

func validSize(n uintptr) bool {
	return n <= 1<<20
}
