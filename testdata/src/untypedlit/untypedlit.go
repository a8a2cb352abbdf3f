package untypedlit

// Package-level declarations are out of scope.
var counter = 10

func locals() {
	i := 10   // want `unconstrained numeric literal in a variable declaration \(give the variable an explicit type\)`
	f := 1.25 // want `unconstrained numeric literal in a variable declaration \(give the variable an explicit type\)`
	var j = 7 // want `unconstrained numeric literal in a variable declaration \(give the variable an explicit type\)`
	n := -5   // want `unconstrained numeric literal in a variable declaration \(give the variable an explicit type\)`

	k := int32(10)
	var l int64 = 7
	var m int8 = -5
	s := "str"

	_, _, _, _, _, _, _, _ = i, f, j, n, k, l, m, s
}
