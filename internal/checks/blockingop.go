package checks

import (
	"go/ast"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
	"github.com/TogetherGame/ffiguard/internal/typeutil"
)

// BlockingOp flags calls to denylisted blocking functions inside a function
// that takes a context.Context. Such a function advertises cooperative
// cancellation; parking its thread in a timed sleep or a bare synchronization
// wait defeats that contract.
//
// The async boundary is the nearest enclosing function declaration: closures
// are transparent, so a blocking call inside a func literal nested in a
// context-taking function still counts.
func BlockingOp(ctx *Context, decl *ast.FuncDecl) {
	if decl.Body == nil || !typeutil.HasContextParam(ctx.Pass, decl.Type) {
		return
	}

	ast.Inspect(decl.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		callee := funcset.Callee(ctx.Pass, call)
		if callee != nil && ctx.Denylist.Contains(callee) {
			ctx.Report(call, ignore.BlockingOp,
				"blocking call in a function that accepts a context",
				"use a cancellable alternative that honors the context")
		}

		return true
	})
}
