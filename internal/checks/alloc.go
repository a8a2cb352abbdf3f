package checks

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// FallibleAlloc flags manual allocations that validate neither their input
// nor their output. The two findings are independent:
//
//   - the size argument reaches the allocator without a preceding bound
//     check (inline comparison or a configured helper call);
//   - the returned pointer is dereferenced before any nil check.
//
// "Preceding" and "before" are textual within the same function body; the
// engine deliberately has no control-flow graph, so a check on any branch
// counts (false negatives over false positives).
func FallibleAlloc(ctx *Context, call *ast.CallExpr, callee *types.Func, stack []ast.Node) {
	if !ctx.set(funcset.MemAlloc).Contains(callee) {
		return
	}

	body := enclosingBody(stack)
	if body == nil {
		return
	}

	checkAllocSize(ctx, body, call)
	checkAllocResult(ctx, body, call, stack)
}

func checkAllocSize(ctx *Context, body *ast.BlockStmt, call *ast.CallExpr) {
	if len(call.Args) == 0 {
		return
	}

	// Only a plain variable size is traceable; constants and computed
	// expressions make the rule abstain.
	ident, ok := Peel(ctx.Pass, call.Args[0]).(*ast.Ident)
	if !ok {
		return
	}
	obj := objectOf(ctx.Pass, ident)
	if obj == nil {
		return
	}

	if !sizeCheckedBefore(ctx, body, obj, call.Pos()) {
		ctx.Report(call.Args[0], ignore.FallibleAlloc,
			"allocation size is not validated",
			"bound-check the size before allocating")
	}
}

// sizeCheckedBefore reports whether obj is compared against a bound, or
// passed to a configured size-check helper, textually before pos.
func sizeCheckedBefore(ctx *Context, body *ast.BlockStmt, obj types.Object, pos token.Pos) bool {
	found := false

	ast.Inspect(body, func(n ast.Node) bool {
		if found || n == nil || n.Pos() >= pos {
			return !found
		}

		switch n := n.(type) {
		case *ast.BinaryExpr:
			switch n.Op {
			case token.LSS, token.LEQ, token.GTR, token.GEQ:
				if refersTo(ctx.Pass, n.X, obj) || refersTo(ctx.Pass, n.Y, obj) {
					found = true
				}
			}
		case *ast.CallExpr:
			if isSizeCheckHelper(ctx, n) && argRefersTo(ctx.Pass, n, obj) {
				found = true
			}
		}

		return !found
	})

	return found
}

func isSizeCheckHelper(ctx *Context, call *ast.CallExpr) bool {
	name := ""
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		name = fun.Name
	case *ast.SelectorExpr:
		name = fun.Sel.Name
	}

	for _, helper := range ctx.SizeCheckFuncs {
		if helper == name {
			return true
		}
	}

	return false
}

func argRefersTo(pass *analysis.Pass, call *ast.CallExpr, obj types.Object) bool {
	for _, arg := range call.Args {
		if refersTo(pass, arg, obj) {
			return true
		}
	}

	return false
}

func refersTo(pass *analysis.Pass, expr ast.Expr, obj types.Object) bool {
	ident, ok := Peel(pass, expr).(*ast.Ident)

	return ok && objectOf(pass, ident) == obj
}

// checkAllocResult finds the local the allocation is bound to and flags the
// first dereference not preceded by a nil check. Results that are discarded
// or flow into other expressions are opaque.
func checkAllocResult(ctx *Context, body *ast.BlockStmt, call *ast.CallExpr, stack []ast.Node) {
	obj := resultBinding(ctx.Pass, call, stack)
	if obj == nil {
		return
	}

	var firstDeref ast.Node
	nilChecked := false

	ast.Inspect(body, func(n ast.Node) bool {
		if firstDeref != nil || nilChecked || n == nil || n.Pos() <= call.End() {
			return firstDeref == nil && !nilChecked
		}

		switch n := n.(type) {
		case *ast.BinaryExpr:
			if n.Op != token.EQL && n.Op != token.NEQ {
				return true
			}
			if (refersTo(ctx.Pass, n.X, obj) && isNil(ctx.Pass, n.Y)) ||
				(refersTo(ctx.Pass, n.Y, obj) && isNil(ctx.Pass, n.X)) {
				nilChecked = true
			}
		case *ast.StarExpr:
			if refersTo(ctx.Pass, n.X, obj) {
				firstDeref = n
			}
		}

		return firstDeref == nil && !nilChecked
	})

	if firstDeref != nil {
		ctx.Report(firstDeref, ignore.FallibleAlloc,
			"allocation result may be nil when dereferenced",
			"check the result against nil before use")
	}
}

// resultBinding returns the object the call's result is directly bound to,
// using the traversal stack to find the enclosing assignment.
func resultBinding(pass *analysis.Pass, call *ast.CallExpr, stack []ast.Node) types.Object {
	if len(stack) < 2 {
		return nil
	}

	switch parent := stack[len(stack)-2].(type) {
	case *ast.AssignStmt:
		if len(parent.Rhs) == 1 && parent.Rhs[0] == call && len(parent.Lhs) >= 1 {
			if ident, ok := parent.Lhs[0].(*ast.Ident); ok {
				return objectOf(pass, ident)
			}
		}
	case *ast.ValueSpec:
		if len(parent.Values) == 1 && parent.Values[0] == call && len(parent.Names) >= 1 {
			return objectOf(pass, parent.Names[0])
		}
	}

	return nil
}

func isNil(pass *analysis.Pass, expr ast.Expr) bool {
	tv, ok := pass.TypesInfo.Types[ast.Unparen(expr)]

	return ok && tv.IsNil()
}
