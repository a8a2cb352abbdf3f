package checks

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

// peelDepth bounds the recursive peeling of conversion chains.
const peelDepth = 16

// Peel strips parentheses and type conversions, returning the innermost
// expression, so that
//
//	uintptr(unsafe.Pointer((&v)))
//
// peels to &v. Calls that are not conversions are left intact.
func Peel(pass *analysis.Pass, expr ast.Expr) ast.Expr {
	return peel(pass, expr, peelDepth)
}

func peel(pass *analysis.Pass, expr ast.Expr, depth int) ast.Expr {
	if depth == 0 {
		return expr
	}

	switch e := expr.(type) {
	case *ast.ParenExpr:
		return peel(pass, e.X, depth-1)
	case *ast.CallExpr:
		if len(e.Args) == 1 && isConversion(pass, e) {
			return peel(pass, e.Args[0], depth-1)
		}
	}

	return expr
}

// isConversion reports whether the call expression is a type conversion.
func isConversion(pass *analysis.Pass, call *ast.CallExpr) bool {
	tv, ok := pass.TypesInfo.Types[call.Fun]

	return ok && tv.IsType()
}
