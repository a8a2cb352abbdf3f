package typeutil

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

const contextPkgPath = "context"

// IsContextType checks if the type is context.Context, unwrapping pointers.
func IsContextType(t types.Type) bool {
	return isNamedTypeFromType(t, contextPkgPath, "Context")
}

// HasContextParam reports whether the function type declares a
// context.Context parameter. This is the static marker for a cooperatively
// suspendable function: its callees must not block the thread outright.
func HasContextParam(pass *analysis.Pass, ft *ast.FuncType) bool {
	if ft.Params == nil {
		return false
	}

	for _, field := range ft.Params.List {
		tv, ok := pass.TypesInfo.Types[field.Type]
		if ok && IsContextType(tv.Type) {
			return true
		}
	}

	return false
}

// IsPointerLike reports whether t is a pointer or unsafe.Pointer, the types
// tracked by the pointer lifecycle analysis.
func IsPointerLike(t types.Type) bool {
	switch u := t.Underlying().(type) {
	case *types.Pointer:
		return true
	case *types.Basic:
		return u.Kind() == types.UnsafePointer
	}

	return false
}

// IsUnsafeConversionType reports whether t is unsafe.Pointer or uintptr, the
// only result types through which a stack address escapes meaningfully in Go.
func IsUnsafeConversionType(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	return basic.Kind() == types.UnsafePointer || basic.Kind() == types.Uintptr
}

// IsStringType reports whether t's underlying type is string.
func IsStringType(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)

	return ok && basic.Info()&types.IsString != 0
}

// IsNilExpr reports whether the expression is the predeclared nil (possibly
// through a conversion the caller already peeled).
func IsNilExpr(pass *analysis.Pass, expr ast.Expr) bool {
	tv, ok := pass.TypesInfo.Types[expr]

	return ok && tv.IsNil()
}

// HasHostLayout reports whether the struct carries a structs.HostLayout
// field, the marker that pins its memory layout for foreign code.
func HasHostLayout(st *types.Struct) bool {
	for i := range st.NumFields() {
		if isNamedTypeFromType(st.Field(i).Type(), "structs", "HostLayout") {
			return true
		}
	}

	return false
}

// IsHostLayoutMarker reports whether t is structs.HostLayout itself.
func IsHostLayoutMarker(t types.Type) bool {
	return isNamedTypeFromType(t, "structs", "HostLayout")
}

func isNamedTypeFromType(t types.Type, pkgPath, typeName string) bool {
	t = unwrapPointer(t)

	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	return obj.Pkg().Path() == pkgPath && obj.Name() == typeName
}

func unwrapPointer(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		return ptr.Elem()
	}

	return t
}
