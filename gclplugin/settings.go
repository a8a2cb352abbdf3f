package gclplugin

import (
	"flag"
	"strconv"
)

// Settings represents the configuration options for an instance of the [Plugin].
// Each field maps onto the analyzer flag of the same name; only explicitly set
// (non-nil) fields are applied.
type Settings struct {
	// MemUnsafeFuncs overrides the memory-unsafe function patterns.
	MemUnsafeFuncs *string `json:"mem-unsafe-funcs,omitzero"`
	// MemAllocFuncs overrides the fallible allocator patterns.
	MemAllocFuncs *string `json:"mem-alloc-funcs,omitzero"`
	// MemFreeFuncs overrides the deallocator patterns.
	MemFreeFuncs *string `json:"mem-free-funcs,omitzero"`
	// IOFuncs overrides the untrusted-input IO patterns.
	IOFuncs *string `json:"io-funcs,omitzero"`
	// LibLoadingFuncs overrides the dynamic loader patterns.
	LibLoadingFuncs *string `json:"lib-loading-funcs,omitzero"`
	// NonReentrantFuncs overrides the non-reentrant function patterns.
	NonReentrantFuncs *string `json:"non-reentrant-funcs,omitzero"`
	// BlockingFuncs adds blocking function patterns.
	BlockingFuncs *string `json:"blocking-funcs,omitzero"`
	// AllocSizeCheckFuncs sets the size-validation helper names.
	AllocSizeCheckFuncs *string `json:"alloc-size-check-funcs,omitzero"`
	// ForeignNamespace sets the package bare patterns resolve against.
	ForeignNamespace *string `json:"foreign-namespace,omitzero"`
	// AllowIOBlocking drops the IO set from the blockingop denylist.
	AllowIOBlocking *bool `json:"allow-io-blocking,omitzero"`

	// Per-rule switches.
	MemUnsafe     *bool `json:"memunsafe,omitzero"`
	NonReentrant  *bool `json:"nonreentrant,omitzero"`
	LibLoading    *bool `json:"libloading,omitzero"`
	FallibleAlloc *bool `json:"falliblealloc,omitzero"`
	CString       *bool `json:"cstring,omitzero"`
	CharRange     *bool `json:"charrange,omitzero"`
	NullDeref     *bool `json:"nullderef,omitzero"`
	DanglingPtr   *bool `json:"danglingptr,omitzero"`
	DoubleFree    *bool `json:"doublefree,omitzero"`
	StackAddr     *bool `json:"stackaddr,omitzero"`
	BlockingOp    *bool `json:"blockingop,omitzero"`
	HiddenUnsafe  *bool `json:"hiddenunsafe,omitzero"`
	HostLayout    *bool `json:"hostlayout,omitzero"`
	UntypedLit    *bool `json:"untypedlit,omitzero"`
}

// apply sets every explicitly configured value on the analyzer's flag set.
func (s Settings) apply(flags *flag.FlagSet) error {
	stringFlags := map[string]*string{
		"mem-unsafe-funcs":       s.MemUnsafeFuncs,
		"mem-alloc-funcs":        s.MemAllocFuncs,
		"mem-free-funcs":         s.MemFreeFuncs,
		"io-funcs":               s.IOFuncs,
		"lib-loading-funcs":      s.LibLoadingFuncs,
		"non-reentrant-funcs":    s.NonReentrantFuncs,
		"blocking-funcs":         s.BlockingFuncs,
		"alloc-size-check-funcs": s.AllocSizeCheckFuncs,
		"foreign-namespace":      s.ForeignNamespace,
	}
	for name, value := range stringFlags {
		if value == nil {
			continue
		}
		if err := flags.Set(name, *value); err != nil {
			return err
		}
	}

	boolFlags := map[string]*bool{
		"allow-io-blocking": s.AllowIOBlocking,
		"memunsafe":         s.MemUnsafe,
		"nonreentrant":      s.NonReentrant,
		"libloading":        s.LibLoading,
		"falliblealloc":     s.FallibleAlloc,
		"cstring":           s.CString,
		"charrange":         s.CharRange,
		"nullderef":         s.NullDeref,
		"danglingptr":       s.DanglingPtr,
		"doublefree":        s.DoubleFree,
		"stackaddr":         s.StackAddr,
		"blockingop":        s.BlockingOp,
		"hiddenunsafe":      s.HiddenUnsafe,
		"hostlayout":        s.HostLayout,
		"untypedlit":        s.UntypedLit,
	}
	for name, value := range boolFlags {
		if value == nil {
			continue
		}
		if err := flags.Set(name, strconv.FormatBool(*value)); err != nil {
			return err
		}
	}

	return nil
}
