package checks

import (
	"go/ast"
	"go/types"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// NonReentrant flags calls to configured non-reentrant functions (localtime,
// strtok and friends), which return pointers into hidden static storage.
func NonReentrant(ctx *Context, call *ast.CallExpr, callee *types.Func) {
	if !ctx.set(funcset.NonReentrant).Contains(callee) {
		return
	}

	ctx.Report(call, ignore.NonReentrant,
		"use of non-reentrant function",
		"consider using its reentrant counterpart")
}
