package checks

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/typeutil"
)

// StackAddress flags return expressions that smuggle the address of a
// block-local out of the function as unsafe.Pointer or uintptr. Once the
// value leaves pointer-typed Go, the collector no longer keeps the local
// alive, so the caller-visible address is immediately invalid. Plain `&x`
// returns stay pointer-typed and are not flagged.
//
// Blocks already analyzed by an enclosing pass are memoized so nested blocks
// are never re-examined or double-reported.
func StackAddress(ctx *Context, block *ast.BlockStmt, visited map[*ast.BlockStmt]bool) {
	if visited[block] {
		return
	}
	visited[block] = true

	ast.Inspect(block, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BlockStmt:
			if n != block {
				if visited[n] {
					return false
				}
				visited[n] = true
			}
		case *ast.FuncLit:
			// A closure's returns belong to the closure; its body block will
			// be visited in its own right.
			return false
		case *ast.ReturnStmt:
			for _, res := range n.Results {
				checkEscapingReturn(ctx, block, res)
			}
		}

		return true
	})
}

func checkEscapingReturn(ctx *Context, block *ast.BlockStmt, res ast.Expr) {
	tv, ok := ctx.Pass.TypesInfo.Types[res]
	if !ok || !typeutil.IsUnsafeConversionType(tv.Type) {
		return
	}

	unary, ok := Peel(ctx.Pass, res).(*ast.UnaryExpr)
	if !ok || unary.Op != token.AND {
		return
	}
	ident, ok := Peel(ctx.Pass, unary.X).(*ast.Ident)
	if !ok {
		return
	}

	obj := objectOf(ctx.Pass, ident)
	if !isBlockLocal(obj, block) {
		return
	}

	ctx.Report(res, ignore.StackAddr,
		"returning the address of a local variable as an unsafe pointer",
		"the storage is released at function exit, making the pointer immediately invalid")
}

// isBlockLocal reports whether obj is a variable declared inside the block
// itself. Parameters and package-level variables are declared outside the
// block and do not qualify.
func isBlockLocal(obj types.Object, block *ast.BlockStmt) bool {
	v, ok := obj.(*types.Var)
	if !ok || v.IsField() {
		return false
	}

	return v.Pos() > block.Pos() && v.Pos() < block.End()
}
