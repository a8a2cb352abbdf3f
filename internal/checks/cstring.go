package checks

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/typeutil"
)

// StringToForeign flags foreign calls receiving raw Go string bytes. Go
// string data carries a length instead of a NUL terminator, so extracting its
// backing pointer and handing it to foreign code reads past the value or
// truncates it. The explicit conversion path (copying into a NUL-terminated
// buffer) is the safe version and is not flagged.
//
// Runs on every foreign call regardless of category membership.
func StringToForeign(ctx *Context, call *ast.CallExpr, callee *types.Func) {
	if !ctx.isForeign(callee) {
		return
	}

	for _, arg := range call.Args {
		if isRawStringData(ctx, arg) {
			ctx.Report(arg, ignore.CString,
				"passing Go string data to a foreign function",
				"the bytes are not NUL-terminated; pass a terminated copy instead")
		}
	}
}

// isRawStringData reports whether the argument peels to a raw pointer
// extraction over string-backed bytes: unsafe.StringData(s), or
// unsafe.SliceData of a []byte(s) conversion.
func isRawStringData(ctx *Context, arg ast.Expr) bool {
	inner, ok := Peel(ctx.Pass, arg).(*ast.CallExpr)
	if !ok {
		return false
	}

	switch {
	case isUnsafeBuiltin(ctx.Pass, inner, "StringData"):
		return true
	case isUnsafeBuiltin(ctx.Pass, inner, "SliceData"):
		if len(inner.Args) != 1 {
			return false
		}
		conv, ok := inner.Args[0].(*ast.CallExpr)
		if !ok || !isConversion(ctx.Pass, conv) || len(conv.Args) != 1 {
			return false
		}
		tv, ok := ctx.Pass.TypesInfo.Types[conv.Args[0]]

		return ok && tv.Type != nil && typeutil.IsStringType(tv.Type)
	}

	return false
}

// isUnsafeBuiltin matches a call to the named function of package unsafe.
func isUnsafeBuiltin(pass *analysis.Pass, call *ast.CallExpr, name string) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	pkgName, ok := pass.TypesInfo.ObjectOf(ident).(*types.PkgName)

	return ok && pkgName.Imported().Path() == "unsafe"
}
