package checks

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
	"github.com/TogetherGame/ffiguard/internal/typeutil"
)

// ptrOrigin is the last known provenance of a tracked pointer binding.
type ptrOrigin int

const (
	// originNil covers both `var p *T` (the zero value is nil) and explicit
	// nil initialization or assignment.
	originNil ptrOrigin = iota
	// originAssigned is any non-nil assignment; the value itself is opaque.
	originAssigned
)

// bindState tracks one pointer-typed local within one function body.
type bindState struct {
	origin ptrOrigin
	freed  bool
}

// PointerLifecycle walks one function body in textual order, tracking each
// pointer-typed local through the nil/assigned/freed state machine:
//
//   - dereference while nil      -> nullderef
//   - dereference after free     -> danglingptr
//   - free after free            -> doublefree (at the second call)
//
// Any syntactically visible assignment between two events suppresses the
// violation regardless of which branch it lies on: the analysis is purely
// lexical and forward-only, preferring false negatives to unreachable-branch
// false positives. A pointer passed to another function, aliased with &, or
// touched inside a closure becomes opaque and tracking stops. Closure bodies
// get their own tracking pass over their own locals.
func PointerLifecycle(ctx *Context, body *ast.BlockStmt) {
	states := make(map[types.Object]*bindState)
	freeSet := ctx.set(funcset.Free)

	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			// The closure may assign or free captured pointers; everything
			// it touches becomes opaque to this body's tracking. Its own
			// locals are tracked in a pass of their own.
			dropCaptured(ctx, n, states)
			PointerLifecycle(ctx, n.Body)

			return false

		case *ast.ValueSpec:
			trackDecl(ctx, n, states)

		case *ast.AssignStmt:
			trackAssign(ctx, n, states)

		case *ast.StarExpr:
			checkDeref(ctx, n, states)

		case *ast.UnaryExpr:
			// Taking the address of a tracked binding aliases it.
			if n.Op == token.AND {
				if obj := peeledObject(ctx, n.X); obj != nil {
					delete(states, obj)
				}
			}

		case *ast.CallExpr:
			if isConversion(ctx.Pass, n) {
				break // conversions are wrappers, not call boundaries
			}
			trackCall(ctx, n, freeSet, states)
		}

		return true
	})
}

func trackDecl(ctx *Context, spec *ast.ValueSpec, states map[types.Object]*bindState) {
	for i, name := range spec.Names {
		obj := ctx.Pass.TypesInfo.Defs[name]
		if obj == nil || !typeutil.IsPointerLike(obj.Type()) {
			continue
		}

		st := &bindState{origin: originAssigned}
		switch {
		case len(spec.Values) == 0:
			st.origin = originNil // zero value
		case len(spec.Values) == len(spec.Names):
			if typeutil.IsNilExpr(ctx.Pass, Peel(ctx.Pass, spec.Values[i])) {
				st.origin = originNil
			}
		}
		states[obj] = st
	}
}

func trackAssign(ctx *Context, assign *ast.AssignStmt, states map[types.Object]*bindState) {
	for i, lhs := range assign.Lhs {
		ident, ok := lhs.(*ast.Ident)
		if !ok {
			continue
		}
		obj := objectOf(ctx.Pass, ident)
		if obj == nil || !typeutil.IsPointerLike(obj.Type()) {
			continue
		}
		if _, tracked := states[obj]; !tracked && ctx.Pass.TypesInfo.Defs[ident] == nil {
			continue // assignment to a param or outer binding we never tracked
		}

		st := &bindState{origin: originAssigned}
		if len(assign.Rhs) == len(assign.Lhs) &&
			typeutil.IsNilExpr(ctx.Pass, Peel(ctx.Pass, assign.Rhs[i])) {
			st.origin = originNil
		}
		states[obj] = st
	}
}

func checkDeref(ctx *Context, star *ast.StarExpr, states map[types.Object]*bindState) {
	obj := peeledObject(ctx, star.X)
	if obj == nil {
		return
	}
	st, tracked := states[obj]
	if !tracked {
		return
	}

	switch {
	case st.freed:
		ctx.Report(star, ignore.DanglingPtr,
			"dereference of a pointer that was already freed",
			"the memory is no longer owned by this pointer; reassign it before use")
	case st.origin == originNil:
		ctx.Report(star, ignore.NullDeref,
			"dereference of a nil pointer",
			"assign a valid address before dereferencing")
	}
}

func trackCall(ctx *Context, call *ast.CallExpr, freeSet *funcset.Set, states map[types.Object]*bindState) {
	callee := funcset.Callee(ctx.Pass, call)

	if freeSet.Contains(callee) {
		if obj := soleTracedArg(ctx, call, states); obj != nil {
			st := states[obj]
			if st.freed {
				ctx.Report(call, ignore.DoubleFree,
					"double free of a pointer",
					"reset the pointer after freeing it")
			} else {
				st.freed = true
			}

			return
		}
	}

	// Any other call boundary makes directly passed pointers opaque.
	for _, arg := range call.Args {
		if obj := peeledObject(ctx, arg); obj != nil {
			delete(states, obj)
		}
	}
}

// soleTracedArg returns the single tracked binding passed directly to the
// call, or nil if the call traces zero or several bindings.
func soleTracedArg(ctx *Context, call *ast.CallExpr, states map[types.Object]*bindState) types.Object {
	var found types.Object
	for _, arg := range call.Args {
		obj := peeledObject(ctx, arg)
		if obj == nil {
			continue
		}
		if _, tracked := states[obj]; !tracked {
			continue
		}
		if found != nil {
			return nil
		}
		found = obj
	}

	return found
}

// peeledObject resolves expr, stripped of conversions, to an identifier's
// object, or nil.
func peeledObject(ctx *Context, expr ast.Expr) types.Object {
	ident, ok := Peel(ctx.Pass, expr).(*ast.Ident)
	if !ok {
		return nil
	}

	return objectOf(ctx.Pass, ident)
}

// dropCaptured removes tracking for every binding the closure references.
func dropCaptured(ctx *Context, lit *ast.FuncLit, states map[types.Object]*bindState) {
	ast.Inspect(lit.Body, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok {
			if obj := objectOf(ctx.Pass, ident); obj != nil {
				delete(states, obj)
			}
		}

		return true
	})
}
