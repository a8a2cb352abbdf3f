package hostlayout

import "structs"

type Packet struct {
	Kind int32
	Len  uint32
}

type Frame struct {
	_    structs.HostLayout
	Kind int32
}

type Header struct {
	_     structs.HostLayout
	Inner Nested
}

type Nested struct {
	V int64
}

func csend(p *Packet, n uintptr) int32 // want `struct Packet is passed to a foreign function without a fixed layout \(add a structs.HostLayout field to pin its memory layout\)`

func crecv(f *Frame, n uintptr) int32

func cheader(h *Header) int32 // want `struct Nested is passed to a foreign function without a fixed layout \(add a structs.HostLayout field to pin its memory layout\)`

func cresult(n uintptr) Packet // want `struct Packet is passed to a foreign function without a fixed layout \(add a structs.HostLayout field to pin its memory layout\)`
