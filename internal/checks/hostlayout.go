package checks

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/typeutil"
)

// ForeignLayout checks the signature of a foreign function declaration: any
// struct type exchanged with foreign code must pin its memory layout with a
// structs.HostLayout field, otherwise the Go toolchain is free to reorder or
// pad it differently than the other side expects. Annotated structs are
// additionally checked one level deep for unannotated struct fields.
func ForeignLayout(ctx *Context, decl *ast.FuncDecl) {
	if decl.Body != nil {
		return
	}

	fields := []*ast.Field{}
	if decl.Type.Params != nil {
		fields = append(fields, decl.Type.Params.List...)
	}
	if decl.Type.Results != nil {
		fields = append(fields, decl.Type.Results.List...)
	}

	for _, field := range fields {
		tv, ok := ctx.Pass.TypesInfo.Types[field.Type]
		if !ok {
			continue
		}
		checkLayout(ctx, field.Type, tv.Type, 2)
	}
}

func checkLayout(ctx *Context, at ast.Expr, t types.Type, depth int) {
	if depth == 0 {
		return
	}

	named, st := namedStruct(t)
	if named == nil || typeutil.IsHostLayoutMarker(named) {
		return
	}

	if !typeutil.HasHostLayout(st) {
		ctx.Report(at, ignore.HostLayout,
			fmt.Sprintf("struct %s is passed to a foreign function without a fixed layout", named.Obj().Name()),
			"add a structs.HostLayout field to pin its memory layout")

		return
	}

	for i := range st.NumFields() {
		checkLayout(ctx, at, st.Field(i).Type(), depth-1)
	}
}

// namedStruct unwraps pointers and returns the named struct type, if any.
func namedStruct(t types.Type) (*types.Named, *types.Struct) {
	for {
		ptr, ok := t.Underlying().(*types.Pointer)
		if !ok {
			break
		}
		t = ptr.Elem()
	}

	named, ok := t.(*types.Named)
	if !ok {
		return nil, nil
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, nil
	}

	return named, st
}
