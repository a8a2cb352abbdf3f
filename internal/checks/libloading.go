package checks

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// traceDepth bounds the assignment chain followed from a loader argument
// back to its origin.
const traceDepth = 8

// LibLoading flags dynamic-library loads whose path argument originates from
// an IO-category call: an attacker controlling that input controls which code
// gets executed. The trace follows direct local assignment chains inside the
// same function body only; anything crossing a function boundary is opaque
// and the rule abstains.
func LibLoading(ctx *Context, call *ast.CallExpr, callee *types.Func, stack []ast.Node) {
	if !ctx.set(funcset.LibLoading).Contains(callee) || len(call.Args) == 0 {
		return
	}

	body := enclosingBody(stack)
	if body == nil {
		return
	}

	if originIsIO(ctx, body, call.Args[0], call.Pos(), traceDepth) {
		ctx.Report(call, ignore.LibLoading,
			"attempt to load a dynamic library from an untrusted source",
			"validate the path before loading, or load from a fixed location")
	}
}

// originIsIO reports whether expr, evaluated at pos inside body, traces back
// to a call of an IO-category function.
func originIsIO(ctx *Context, body *ast.BlockStmt, expr ast.Expr, pos token.Pos, depth int) bool {
	if depth == 0 {
		return false
	}

	switch e := Peel(ctx.Pass, expr).(type) {
	case *ast.CallExpr:
		return ctx.set(funcset.IO).Contains(funcset.Callee(ctx.Pass, e))
	case *ast.Ident:
		obj := objectOf(ctx.Pass, e)
		if obj == nil {
			return false
		}
		origin := lastAssignment(ctx.Pass, body, obj, pos)
		if origin == nil {
			return false
		}

		return originIsIO(ctx, body, origin, origin.Pos(), depth-1)
	}

	return false
}

// lastAssignment returns the right-hand side of the latest assignment or
// declaration of obj textually before pos, or nil if none is visible.
func lastAssignment(pass *analysis.Pass, body *ast.BlockStmt, obj types.Object, pos token.Pos) ast.Expr {
	var best ast.Expr
	var bestPos token.Pos

	record := func(at token.Pos, rhs ast.Expr) {
		if at < pos && at > bestPos {
			best, bestPos = rhs, at
		}
	}

	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.AssignStmt:
			for i, lhs := range n.Lhs {
				ident, ok := lhs.(*ast.Ident)
				if !ok || objectOf(pass, ident) != obj {
					continue
				}
				if len(n.Rhs) == len(n.Lhs) {
					record(n.Pos(), n.Rhs[i])
				} else if len(n.Rhs) == 1 {
					// Multi-value assignment from a single call.
					record(n.Pos(), n.Rhs[0])
				}
			}
		case *ast.ValueSpec:
			for i, name := range n.Names {
				if objectOf(pass, name) != obj {
					continue
				}
				if len(n.Values) == len(n.Names) {
					record(n.Pos(), n.Values[i])
				} else if len(n.Values) == 1 {
					record(n.Pos(), n.Values[0])
				}
			}
		}

		return true
	})

	return best
}
