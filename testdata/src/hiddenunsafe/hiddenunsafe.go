package hiddenunsafe

import "unsafe"

// Plainly written unsafe is an audit target for other tools, not this one.
func visible(p *int) unsafe.Pointer {
	return unsafe.Pointer(p)
}

//line bindings.gen.go:100
func expanded(p *int) uintptr {
	return uintptr(unsafe.Pointer(p)) // want `unsafe operation introduced by generated code \(move the unsafe code into auditable source or emit it unexpanded\)`
}
