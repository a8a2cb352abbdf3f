// Package funcset turns configured function name patterns into sets of
// canonical function identities.
//
// # Pattern shapes
//
// A pattern is either qualified or bare, discriminated by the presence of a
// dot:
//
//	memcpy                          bare
//	plugin.Open                     qualified, package-level
//	golang.org/x/sys/unix.Mmap      qualified, package-level
//	net/http.Client.Do              qualified, method
//
// Qualified patterns resolve against the full import closure of the analyzed
// package. Bare patterns resolve as members of the configured foreign
// namespace package (exact name or its exported capitalization), and
// additionally match bodyless function declarations in the analyzed package
// itself, which describe externally linked functions.
//
// # Identity
//
// Identities are *types.Func objects, which are unique per unit: several
// source names reaching the same object compare equal, and one pattern may
// resolve to several objects. A pattern that matches nothing resolves to the
// empty set; configurations are shared across units that may not link every
// referenced function, so this is not an error.
package funcset
