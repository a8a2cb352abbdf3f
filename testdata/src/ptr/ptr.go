package ptr

import "unsafe"

func free(p unsafe.Pointer)

func newbuf(n uintptr) unsafe.Pointer

func consume(p unsafe.Pointer) {}

func nilDeref() int {
	var p *int
	return *p // want `dereference of a nil pointer \(assign a valid address before dereferencing\)`
}

func explicitNilDeref() int {
	var p *int = nil
	return *p // want `dereference of a nil pointer \(assign a valid address before dereferencing\)`
}

func assignedBeforeDeref(x int) int {
	var p *int
	p = &x
	return *p
}

func doubleFree(n uintptr) {
	p := newbuf(n)
	free(p)
	free(p) // want `double free of a pointer \(reset the pointer after freeing it\)`
}

func reassignedBetweenFrees(n uintptr) {
	p := newbuf(n)
	free(p)
	p = newbuf(n)
	free(p)
}

func useAfterFree(n uintptr) int32 {
	p := newbuf(n)
	free(p)
	return *(*int32)(p) // want `dereference of a pointer that was already freed \(the memory is no longer owned by this pointer; reassign it before use\)`
}

func opaqueAfterCall(n uintptr) int32 {
	p := newbuf(n)
	consume(p)
	return *(*int32)(p)
}

func closureLocalNilDeref() int {
	run := func() int {
		var p *int
		return *p // want `dereference of a nil pointer \(assign a valid address before dereferencing\)`
	}
	return run()
}

func closureLocalDoubleFree(n uintptr) {
	run := func() {
		p := newbuf(n)
		free(p)
		free(p) // want `double free of a pointer \(reset the pointer after freeing it\)`
	}
	run()
}

func opaqueAfterClosure(n uintptr) {
	p := newbuf(n)
	free(p)
	reset := func() {
		p = newbuf(n)
	}
	reset()
	free(p)
}
