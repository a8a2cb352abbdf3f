package checks

import (
	"go/ast"
	"go/constant"
	"go/types"
	"unicode"

	"golang.org/x/tools/go/analysis"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// CharRange flags conversions to rune whose operand is constant-foldable and
// provably not a Unicode scalar value: negative, above unicode.MaxRune, or a
// surrogate. Encoding such a rune silently yields U+FFFD. Identity-agnostic:
// runs on every call expression.
func CharRange(ctx *Context, call *ast.CallExpr) {
	if !isRuneConversion(ctx.Pass, call) || len(call.Args) != 1 {
		return
	}

	tv, ok := ctx.Pass.TypesInfo.Types[call.Args[0]]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.Int {
		return
	}

	v, exact := constant.Int64Val(tv.Value)
	if !exact {
		return // does not fit int64; the conversion will not compile anyway
	}

	if v < 0 || v > unicode.MaxRune || (v >= surrogateMin && v <= surrogateMax) {
		ctx.Report(call, ignore.CharRange,
			"conversion to rune is outside the valid code point range",
			"the result is not a valid Unicode scalar value")
	}
}

// isRuneConversion matches a conversion whose target is the predeclared rune
// type, distinguishing it from int32 syntactically.
func isRuneConversion(pass *analysis.Pass, call *ast.CallExpr) bool {
	tv, ok := pass.TypesInfo.Types[call.Fun]
	if !ok || !tv.IsType() {
		return false
	}

	ident, ok := ast.Unparen(call.Fun).(*ast.Ident)

	return ok && pass.TypesInfo.ObjectOf(ident) == types.Universe.Lookup("rune")
}
