package cstring

import "unsafe"

func cwrite(p unsafe.Pointer, n uintptr) int32

func rawStringData(s string) {
	cwrite(unsafe.Pointer(unsafe.StringData(s)), uintptr(len(s))) // want `passing Go string data to a foreign function \(the bytes are not NUL-terminated; pass a terminated copy instead\)`
}

func rawSliceData(s string) {
	cwrite(unsafe.Pointer(unsafe.SliceData([]byte(s))), uintptr(len(s))) // want `passing Go string data to a foreign function \(the bytes are not NUL-terminated; pass a terminated copy instead\)`
}

func terminatedCopy(s string) {
	buf := append([]byte(s), 0)
	cwrite(unsafe.Pointer(unsafe.SliceData(buf)), uintptr(len(buf)))
}
