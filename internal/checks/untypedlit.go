package checks

import (
	"go/ast"
	"go/token"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
)

// UntypedLitAssign flags short variable declarations initialized by a bare
// numeric literal: the variable silently takes the default type (int or
// float64) instead of one the author chose. A conversion or typed constant
// on the right-hand side is the fix and is not flagged. Local bindings only;
// the dispatcher does not route package-level declarations here.
func UntypedLitAssign(ctx *Context, assign *ast.AssignStmt) {
	if assign.Tok != token.DEFINE {
		return
	}
	if len(assign.Rhs) != len(assign.Lhs) {
		return
	}

	for _, rhs := range assign.Rhs {
		reportBareLiteral(ctx, rhs)
	}
}

// UntypedLitSpec is the `var x = 10` form: no explicit type on the declaration.
func UntypedLitSpec(ctx *Context, spec *ast.ValueSpec) {
	if spec.Type != nil {
		return
	}

	for _, value := range spec.Values {
		reportBareLiteral(ctx, value)
	}
}

func reportBareLiteral(ctx *Context, expr ast.Expr) {
	expr = ast.Unparen(expr)

	// A signed literal is still a bare literal.
	if unary, ok := expr.(*ast.UnaryExpr); ok && (unary.Op == token.SUB || unary.Op == token.ADD) {
		expr = ast.Unparen(unary.X)
	}

	lit, ok := expr.(*ast.BasicLit)
	if !ok || (lit.Kind != token.INT && lit.Kind != token.FLOAT) {
		return
	}

	ctx.Report(lit, ignore.UntypedLit,
		"unconstrained numeric literal in a variable declaration",
		"give the variable an explicit type")
}
