package memunsafe

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func viaNamespace(dst, src []byte) {
	unix.Memcpy(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), uintptr(len(src))) // want `use of potentially dangerous memory manipulation function \(consider using its safe version\)`
}

// The call appears before the declaration; classification must not depend on
// file order.
func viaLocalDecl(dst, src unsafe.Pointer, n uintptr) {
	memcpy(dst, src, n) // want `use of potentially dangerous memory manipulation function \(consider using its safe version\)`
}

func memcpy(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer

func safeCopy(dst, src []byte) {
	copy(dst, src)
}
