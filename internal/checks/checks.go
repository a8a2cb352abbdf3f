// Package checks implements the individual ffiguard rules.
//
// Every rule is best-effort and independent: when a precondition cannot be
// evaluated (unknowable value origin, aliasing through a call boundary), the
// rule abstains rather than erroring. No rule ever aborts the pass.
package checks

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"

	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// ReportFunc delivers one diagnostic record. help may be empty.
type ReportFunc func(node ast.Node, rule ignore.RuleName, msg, help string)

// Context carries the per-unit shared state into the rules. It is owned by
// one traversal pass and discarded at its end.
type Context struct {
	Pass *analysis.Pass

	// Sets holds the resolved identity set per category. Read-only after
	// root-visitation resolution.
	Sets map[funcset.Category]*funcset.Set

	// Denylist is the async-blocking denylist: built-in blocking primitives,
	// configured Blocking patterns, and the IO set unless explicitly allowed.
	Denylist *funcset.Set

	// ForeignDecls holds every bodyless function declared in the unit itself,
	// whether or not a pattern names it.
	ForeignDecls *funcset.Set

	// SizeCheckFuncs are helper names accepted as allocation size validation.
	SizeCheckFuncs []string

	ForeignNamespace string

	Macro *MacroSites

	Report ReportFunc
}

func (c *Context) set(cat funcset.Category) *funcset.Set {
	return c.Sets[cat]
}

// isForeign reports whether the callee is implemented outside the analyzed
// source: declared bodyless in the unit, a member of the foreign namespace,
// or named by any configured category.
func (c *Context) isForeign(fn *types.Func) bool {
	if fn == nil {
		return false
	}
	if c.ForeignDecls.Contains(fn) {
		return true
	}
	if pkg := fn.Pkg(); pkg != nil && pkg.Path() == c.ForeignNamespace {
		return true
	}
	for _, set := range c.Sets {
		if set.Contains(fn) {
			return true
		}
	}

	return false
}

// enclosingBody returns the innermost function body on the traversal stack.
func enclosingBody(stack []ast.Node) *ast.BlockStmt {
	for i := len(stack) - 1; i >= 0; i-- {
		switch fn := stack[i].(type) {
		case *ast.FuncDecl:
			return fn.Body
		case *ast.FuncLit:
			return fn.Body
		}
	}

	return nil
}

// objectOf resolves an identifier to its object, definition or use.
func objectOf(pass *analysis.Pass, ident *ast.Ident) types.Object {
	return pass.TypesInfo.ObjectOf(ident)
}
