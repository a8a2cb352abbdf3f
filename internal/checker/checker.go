// Package checker drives the single depth-first pass over one unit. It owns
// all shared traversal state: the resolved identity sets, the macro-site
// registry, and the stack-escape block memo. Everything is created when Run
// starts and discarded when it returns; nothing survives across units.
package checker

import (
	"fmt"
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/TogetherGame/ffiguard/internal/checks"
	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// builtinBlocking are always-denylisted primitives: timed sleeps and
// synchronization waits that park the thread unconditionally.
var builtinBlocking = []string{
	"time.Sleep",
	"sync.WaitGroup.Wait",
	"sync.Mutex.Lock",
	"sync.RWMutex.Lock",
	"sync.Cond.Wait",
}

// Config is the per-run configuration, assembled from flags before the pass.
type Config struct {
	Patterns         map[funcset.Category][]funcset.Pattern
	ForeignNamespace string
	AllowIOBlocking  bool
	SizeCheckFuncs   []string
	Enabled          ignore.EnabledRules
}

// Checker runs one configured pass per unit.
type Checker struct {
	cfg Config
}

// New creates a Checker for the configuration.
func New(cfg Config) *Checker {
	return &Checker{cfg: cfg}
}

// Run analyzes one unit. ignoreMaps and skipFiles are keyed by filename.
func (c *Checker) Run(
	pass *analysis.Pass,
	insp *inspector.Inspector,
	ignoreMaps map[string]ignore.Map,
	skipFiles map[string]bool,
) {
	// Root visitation: resolve every category exactly once. The sets are
	// read-only for the rest of the pass.
	sets := make(map[funcset.Category]*funcset.Set, len(funcset.Categories()))
	for _, cat := range funcset.Categories() {
		sets[cat] = funcset.NewSet(c.cfg.Patterns[cat])
	}

	denylist := funcset.NewSet(funcset.ParseList(strings.Join(builtinBlocking, ",")))

	all := make([]*funcset.Set, 0, len(sets)+1)
	for _, set := range sets {
		all = append(all, set)
	}
	all = append(all, denylist)
	funcset.ResolveAll(pass, c.cfg.ForeignNamespace, all...)

	// Foreign declarations in the unit itself augment the category sets by
	// local name, before any call is classified.
	foreignDecls := funcset.NewSet(nil)
	for _, file := range pass.Files {
		for _, d := range file.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok || fd.Body != nil || fd.Recv != nil {
				continue
			}
			for _, set := range sets {
				set.AddLocalDecl(pass, fd)
			}
			foreignDecls.Add(pass.TypesInfo.Defs[fd.Name])
		}
	}

	// Seed the async-blocking denylist: built-ins, configured Blocking
	// patterns, and the IO set unless explicitly allowed.
	denylist.AddAll(sets[funcset.Blocking])
	if !c.cfg.AllowIOBlocking {
		denylist.AddAll(sets[funcset.IO])
	}

	ctx := &checks.Context{
		Pass:             pass,
		Sets:             sets,
		Denylist:         denylist,
		ForeignDecls:     foreignDecls,
		SizeCheckFuncs:   c.cfg.SizeCheckFuncs,
		ForeignNamespace: c.cfg.ForeignNamespace,
		Macro:            checks.NewMacroSites(pass.Fset),
		Report:           c.reporter(pass, ignoreMaps),
	}

	visitedBlocks := make(map[*ast.BlockStmt]bool)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.CallExpr)(nil),
		(*ast.BlockStmt)(nil),
		(*ast.AssignStmt)(nil),
		(*ast.ValueSpec)(nil),
	}

	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		filename := pass.Fset.Position(n.Pos()).Filename
		skipped := skipFiles[filename]

		switch node := n.(type) {
		case *ast.FuncDecl:
			if skipped {
				return true
			}
			if node.Body == nil {
				if c.enabled(ignore.HostLayout) {
					checks.ForeignLayout(ctx, node)
				}

				return true
			}
			if c.enabled(ignore.BlockingOp) {
				checks.BlockingOp(ctx, node)
			}
			if c.lifecycleEnabled() {
				checks.PointerLifecycle(ctx, node.Body)
			}

		case *ast.CallExpr:
			// hiddenunsafe inspects generator-emitted code on purpose and
			// ignores the generated-file skip list.
			if c.enabled(ignore.HiddenUnsafe) {
				checks.HiddenUnsafe(ctx, node)
			}
			if skipped {
				return true
			}
			c.classifyCall(ctx, node, stack)

		case *ast.BlockStmt:
			if !skipped && c.enabled(ignore.StackAddr) {
				checks.StackAddress(ctx, node, visitedBlocks)
			}

		case *ast.AssignStmt:
			if !skipped && c.enabled(ignore.UntypedLit) && insideFunction(stack) {
				checks.UntypedLitAssign(ctx, node)
			}

		case *ast.ValueSpec:
			if !skipped && c.enabled(ignore.UntypedLit) && insideFunction(stack) {
				checks.UntypedLitSpec(ctx, node)
			}
		}

		return true
	})
}

// classifyCall tests the callee against each category set independently, in
// classification order, then runs the identity-agnostic checks.
func (c *Checker) classifyCall(ctx *checks.Context, call *ast.CallExpr, stack []ast.Node) {
	callee := funcset.Callee(ctx.Pass, call)

	if callee != nil {
		if c.enabled(ignore.NonReentrant) {
			checks.NonReentrant(ctx, call, callee)
		}
		if c.enabled(ignore.MemUnsafe) {
			checks.MemUnsafe(ctx, call, callee)
		}
		if c.enabled(ignore.LibLoading) {
			checks.LibLoading(ctx, call, callee, stack)
		}
		if c.enabled(ignore.FallibleAlloc) {
			checks.FallibleAlloc(ctx, call, callee, stack)
		}
		// Free-category calls are consumed by the pointer lifecycle pass.
	}

	if c.enabled(ignore.CString) {
		checks.StringToForeign(ctx, call, callee)
	}
	if c.enabled(ignore.CharRange) {
		checks.CharRange(ctx, call)
	}
}

func (c *Checker) enabled(rule ignore.RuleName) bool {
	return c.cfg.Enabled[rule]
}

func (c *Checker) lifecycleEnabled() bool {
	return c.enabled(ignore.NullDeref) || c.enabled(ignore.DanglingPtr) || c.enabled(ignore.DoubleFree)
}

// reporter builds the diagnostic sink: it filters disabled and suppressed
// findings and renders {rule, span, message, help} onto the pass.
func (c *Checker) reporter(pass *analysis.Pass, ignoreMaps map[string]ignore.Map) checks.ReportFunc {
	return func(node ast.Node, rule ignore.RuleName, msg, help string) {
		if !c.cfg.Enabled[rule] {
			return
		}

		pos := pass.Fset.Position(node.Pos())
		if m, ok := ignoreMaps[pos.Filename]; ok && m.ShouldIgnore(pos.Line, rule) {
			return
		}

		if help != "" {
			msg = fmt.Sprintf("%s (%s)", msg, help)
		}
		pass.Report(analysis.Diagnostic{
			Pos:      node.Pos(),
			End:      node.End(),
			Category: string(rule),
			Message:  msg,
		})
	}
}

// insideFunction reports whether the node is lexically within a function
// body, excluding package-level declarations.
func insideFunction(stack []ast.Node) bool {
	for _, n := range stack {
		switch n.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return true
		}
	}

	return false
}
