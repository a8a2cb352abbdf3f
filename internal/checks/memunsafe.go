package checks

import (
	"go/ast"
	"go/types"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// MemUnsafe flags calls to configured memory-manipulation functions that do
// not bound-check their operands (memcpy, strcpy and friends). No argument
// inspection: the call itself is the hazard.
func MemUnsafe(ctx *Context, call *ast.CallExpr, callee *types.Func) {
	if !ctx.set(funcset.MemUnsafe).Contains(callee) {
		return
	}

	ctx.Report(call, ignore.MemUnsafe,
		"use of potentially dangerous memory manipulation function",
		"consider using its safe version")
}
