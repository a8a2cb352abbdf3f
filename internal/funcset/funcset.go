package funcset

import (
	"errors"
	"go/ast"
	"go/types"
	"strings"
	"unicode"

	"golang.org/x/tools/go/analysis"
)

// Category classifies configured functions by the hazard they participate in.
type Category int

// Function categories, one per configurable pattern list.
const (
	MemUnsafe Category = iota
	MemAlloc
	IO
	LibLoading
	Blocking
	NonReentrant
	Free
	numCategories
)

// Categories returns all categories in classification order.
func Categories() []Category {
	cats := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		cats = append(cats, c)
	}

	return cats
}

func (c Category) String() string {
	switch c {
	case MemUnsafe:
		return "mem-unsafe"
	case MemAlloc:
		return "mem-alloc"
	case IO:
		return "io"
	case LibLoading:
		return "lib-loading"
	case Blocking:
		return "blocking"
	case NonReentrant:
		return "non-reentrant"
	case Free:
		return "mem-free"
	}

	return "unknown"
}

// Kind discriminates how a pattern is resolved.
type Kind int

const (
	// KindQualified resolves against the import closure:
	// "pkg/path.Func" or "pkg/path.Type.Method".
	KindQualified Kind = iota
	// KindBare resolves as a member of the foreign namespace package,
	// or a bodyless function declared in the analyzed package itself.
	KindBare
)

// Pattern holds one parsed function name pattern.
type Pattern struct {
	Raw      string
	Kind     Kind
	PkgPath  string
	TypeName string // empty for package-level functions
	FuncName string
}

// ErrMalformedPattern is returned by Parse for patterns that cannot name a function.
var ErrMalformedPattern = errors.New("malformed function pattern")

// Parse parses a single pattern string.
// "memcpy" is bare; "plugin.Open" and "golang.org/x/sys/unix.Mmap" are
// qualified; "net/http.Client.Do" names a method.
func Parse(raw string) (Pattern, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return Pattern{}, ErrMalformedPattern
	}

	lastDot := strings.LastIndex(raw, ".")
	if lastDot == -1 {
		if strings.Contains(raw, "/") {
			return Pattern{}, ErrMalformedPattern
		}

		return Pattern{Raw: raw, Kind: KindBare, FuncName: raw}, nil
	}

	p := Pattern{Raw: raw, Kind: KindQualified, FuncName: raw[lastDot+1:]}
	if p.FuncName == "" || strings.Contains(p.FuncName, "/") {
		return Pattern{}, ErrMalformedPattern
	}

	prefix := raw[:lastDot]

	// "pkg/path.Type.Method": type names start with an uppercase letter.
	if secondLastDot := strings.LastIndex(prefix, "."); secondLastDot != -1 {
		possibleType := prefix[secondLastDot+1:]
		if possibleType != "" && !strings.Contains(possibleType, "/") && unicode.IsUpper(rune(possibleType[0])) {
			p.TypeName = possibleType
			prefix = prefix[:secondLastDot]
		}
	}

	if prefix == "" {
		return Pattern{}, ErrMalformedPattern
	}
	p.PkgPath = prefix

	return p, nil
}

// ParseList parses a comma-separated pattern list.
// Malformed entries are skipped, not fatal: configurations are shared across
// units and a broken entry must not abort the pass.
func ParseList(csv string) []Pattern {
	if csv == "" {
		return nil
	}

	var patterns []Pattern
	for _, part := range strings.Split(csv, ",") {
		p, err := Parse(part)
		if err != nil {
			continue
		}
		patterns = append(patterns, p)
	}

	return patterns
}

// Set is one category's configured patterns plus the identities they resolved
// to. Resolution happens exactly once per unit, before classification; the
// identity set is read-only afterwards.
type Set struct {
	Patterns []Pattern
	ids      map[types.Object]struct{}
}

// NewSet creates a Set over the given patterns.
func NewSet(patterns []Pattern) *Set {
	return &Set{Patterns: patterns, ids: make(map[types.Object]struct{})}
}

// Add inserts a resolved identity.
func (s *Set) Add(obj types.Object) {
	if obj != nil {
		s.ids[obj] = struct{}{}
	}
}

// AddAll inserts every identity of other.
func (s *Set) AddAll(other *Set) {
	for obj := range other.ids {
		s.ids[obj] = struct{}{}
	}
}

// Contains reports whether obj is one of the resolved identities.
func (s *Set) Contains(obj types.Object) bool {
	if obj == nil {
		return false
	}
	_, ok := s.ids[obj]

	return ok
}

// Len returns the number of resolved identities.
func (s *Set) Len() int { return len(s.ids) }

// AddLocalDecl augments the set with a foreign function declared in the unit
// itself: a bodyless top-level function whose name textually equals a bare
// pattern joins the set directly, bypassing namespace resolution.
func (s *Set) AddLocalDecl(pass *analysis.Pass, decl *ast.FuncDecl) {
	if decl.Body != nil || decl.Recv != nil {
		return
	}

	for _, p := range s.Patterns {
		if p.Kind == KindBare && p.FuncName == decl.Name.Name {
			s.Add(pass.TypesInfo.Defs[decl.Name])

			return
		}
	}
}

// ResolveAll resolves every set's patterns against the pass's import closure.
// Qualified patterns match package members (and methods) anywhere in the
// closure; bare patterns match members of the namespace package, by exact
// name or its exported capitalization. Patterns matching nothing resolve
// silently to nothing.
func ResolveAll(pass *analysis.Pass, namespace string, sets ...*Set) {
	pkgs := importClosure(pass.Pkg)

	for _, set := range sets {
		if set == nil {
			continue
		}
		for _, p := range set.Patterns {
			resolve(set, pkgs, namespace, p)
		}
	}
}

func resolve(set *Set, pkgs map[string]*types.Package, namespace string, p Pattern) {
	switch p.Kind {
	case KindQualified:
		pkg := pkgs[p.PkgPath]
		if pkg == nil {
			return
		}
		if p.TypeName == "" {
			addFunc(set, pkg.Scope().Lookup(p.FuncName))

			return
		}
		tn, ok := pkg.Scope().Lookup(p.TypeName).(*types.TypeName)
		if !ok {
			return
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			return
		}
		for i := range named.NumMethods() {
			if m := named.Method(i); m.Name() == p.FuncName {
				set.Add(m)
			}
		}

	case KindBare:
		ns := pkgs[namespace]
		if ns == nil {
			return
		}
		addFunc(set, ns.Scope().Lookup(p.FuncName))
		if exported := exportedForm(p.FuncName); exported != p.FuncName {
			addFunc(set, ns.Scope().Lookup(exported))
		}
	}
}

func addFunc(set *Set, obj types.Object) {
	if fn, ok := obj.(*types.Func); ok {
		set.Add(fn)
	}
}

// exportedForm capitalizes the first rune: bare "memcpy" also matches a Go
// binding package's exported "Memcpy".
func exportedForm(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return name
	}
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// importClosure maps package path to package for the unit and every
// dependency reachable from it.
func importClosure(root *types.Package) map[string]*types.Package {
	pkgs := make(map[string]*types.Package)

	var walk func(p *types.Package)
	walk = func(p *types.Package) {
		if _, seen := pkgs[p.Path()]; seen {
			return
		}
		pkgs[p.Path()] = p
		for _, imp := range p.Imports() {
			walk(imp)
		}
	}
	walk(root)

	return pkgs
}

// Callee extracts the called function's identity from a call expression.
// Returns nil if the callee cannot be determined statically (indirect call,
// conversion, built-in).
func Callee(pass *analysis.Pass, call *ast.CallExpr) *types.Func {
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		if f, ok := pass.TypesInfo.ObjectOf(fun).(*types.Func); ok {
			return f
		}

	case *ast.SelectorExpr:
		if sel := pass.TypesInfo.Selections[fun]; sel != nil {
			if f, ok := sel.Obj().(*types.Func); ok {
				return f
			}

			return nil
		}
		if f, ok := pass.TypesInfo.ObjectOf(fun.Sel).(*types.Func); ok {
			return f
		}
	}

	return nil
}
