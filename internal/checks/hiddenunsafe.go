package checks

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
)

// MacroSites records source positions introduced through line directives.
// A node whose adjusted position differs from its raw position was emitted
// by a generator at a location its invoking user never wrote. The set is
// append-only for the unit's lifetime and discarded with it.
type MacroSites struct {
	fset  *token.FileSet
	sites map[token.Pos]struct{}
}

// NewMacroSites creates the registry for one unit.
func NewMacroSites(fset *token.FileSet) *MacroSites {
	return &MacroSites{fset: fset, sites: make(map[token.Pos]struct{})}
}

// Expanded reports whether pos lies in directive-remapped code, recording it.
func (m *MacroSites) Expanded(pos token.Pos) bool {
	raw := m.fset.PositionFor(pos, false)
	adjusted := m.fset.PositionFor(pos, true)

	if raw.Filename == adjusted.Filename && raw.Line == adjusted.Line {
		return false
	}
	m.sites[pos] = struct{}{}

	return true
}

// Len returns the number of recorded sites.
func (m *MacroSites) Len() int { return len(m.sites) }

// HiddenUnsafe flags unsafe operations whose source location was introduced
// by a line directive: the user invoking the generator cannot audit code
// they never see, so the unsafety must live in the visible source instead.
func HiddenUnsafe(ctx *Context, call *ast.CallExpr) {
	if !usesUnsafe(ctx, call) {
		return
	}

	if !ctx.Macro.Expanded(call.Pos()) {
		return
	}

	ctx.Report(call, ignore.HiddenUnsafe,
		"unsafe operation introduced by generated code",
		"move the unsafe code into auditable source or emit it unexpanded")
}

// usesUnsafe matches calls and conversions through package unsafe
// (unsafe.Pointer, unsafe.StringData, unsafe.Add, ...).
func usesUnsafe(ctx *Context, call *ast.CallExpr) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	pkgName, ok := objectOf(ctx.Pass, ident).(*types.PkgName)

	return ok && pkgName.Imported().Path() == "unsafe"
}
