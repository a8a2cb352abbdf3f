// Package ignore handles //ffiguard:ignore directives.
package ignore

import (
	"go/ast"
	"go/token"
	"strings"
)

// RuleName identifies a rule that can be suppressed.
type RuleName string

// Valid rule names.
const (
	MemUnsafe     RuleName = "memunsafe"
	NonReentrant  RuleName = "nonreentrant"
	LibLoading    RuleName = "libloading"
	FallibleAlloc RuleName = "falliblealloc"
	CString       RuleName = "cstring"
	CharRange     RuleName = "charrange"
	NullDeref     RuleName = "nullderef"
	DanglingPtr   RuleName = "danglingptr"
	DoubleFree    RuleName = "doublefree"
	StackAddr     RuleName = "stackaddr"
	BlockingOp    RuleName = "blockingop"
	HiddenUnsafe  RuleName = "hiddenunsafe"
	HostLayout    RuleName = "hostlayout"
	UntypedLit    RuleName = "untypedlit"
)

// AllRuleNames returns all valid rule names.
func AllRuleNames() []RuleName {
	return []RuleName{
		MemUnsafe,
		NonReentrant,
		LibLoading,
		FallibleAlloc,
		CString,
		CharRange,
		NullDeref,
		DanglingPtr,
		DoubleFree,
		StackAddr,
		BlockingOp,
		HiddenUnsafe,
		HostLayout,
		UntypedLit,
	}
}

// Entry tracks an ignore directive and its usage.
type Entry struct {
	pos   token.Pos         // Position of the ignore comment
	rules []RuleName        // List of rule names (empty = all)
	used  map[RuleName]bool // Track usage per rule
}

// Map tracks ignore entries by line number.
type Map map[int]*Entry

// EnabledRules tracks which rules are currently enabled.
type EnabledRules map[RuleName]bool

// Build scans a file for ignore comments and returns a map.
func Build(fset *token.FileSet, file *ast.File) Map {
	m := make(Map)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if rules, ok := parseIgnoreComment(c.Text); ok {
				line := fset.Position(c.Pos()).Line
				m[line] = &Entry{
					pos:   c.Pos(),
					rules: rules,
					used:  make(map[RuleName]bool),
				}
			}
		}
	}

	return m
}

// parseIgnoreComment parses an ignore directive and returns the rule names.
// Returns nil slice if no specific rules are specified (ignore all).
// Returns false if not an ignore comment.
//
// Supported formats:
//   - //ffiguard:ignore                        -> ignore all rules
//   - //ffiguard:ignore doublefree             -> ignore specific rule
//   - //ffiguard:ignore doublefree,nullderef   -> ignore multiple rules
//   - //ffiguard:ignore - reason               -> ignore all with comment
//   - //ffiguard:ignore doublefree - reason    -> ignore specific with comment
func parseIgnoreComment(text string) ([]RuleName, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "ffiguard:ignore") {
		return nil, false
	}

	rest := strings.TrimPrefix(text, "ffiguard:ignore")
	rest = strings.TrimSpace(rest)

	if rest == "" {
		return nil, true // No specific rules = ignore all
	}

	// Stop at comment markers: " - ", " // ", or " //"
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}
	if strings.HasPrefix(rest, "- ") || rest == "-" {
		return nil, true
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, true
	}

	parts := strings.Split(rest, ",")
	rules := make([]RuleName, 0, len(parts))

	for _, part := range parts {
		name := RuleName(strings.TrimSpace(part))
		if name != "" {
			rules = append(rules, name)
		}
	}

	return rules, true
}

// ShouldIgnore returns true if the given line should be ignored for the
// specified rule. It checks the same line and the previous line.
// When an ignore is used, it marks the entry as used for that rule.
func (m Map) ShouldIgnore(line int, rule RuleName) bool {
	if m.shouldIgnoreEntry(m[line], rule) {
		return true
	}
	if m.shouldIgnoreEntry(m[line-1], rule) {
		return true
	}

	return false
}

func (m Map) shouldIgnoreEntry(entry *Entry, rule RuleName) bool {
	if entry == nil {
		return false
	}

	// Empty rules list means ignore all
	if len(entry.rules) == 0 {
		entry.used[rule] = true

		return true
	}

	for _, r := range entry.rules {
		if r == rule {
			entry.used[rule] = true

			return true
		}
	}

	return false
}

// UnusedIgnore represents an unused ignore directive.
type UnusedIgnore struct {
	Pos   token.Pos
	Rules []RuleName // Unused rule names (empty if entire directive is unused)
}

// GetUnusedIgnores returns ignore directives that were not used.
// Enabled rules determine which unused specifications are valid to report.
func (m Map) GetUnusedIgnores(enabled EnabledRules) []UnusedIgnore {
	var unused []UnusedIgnore

	for _, entry := range m {
		if len(entry.rules) == 0 {
			anyUsed := false
			for rule := range enabled {
				if entry.used[rule] {
					anyUsed = true

					break
				}
			}
			if !anyUsed {
				unused = append(unused, UnusedIgnore{Pos: entry.pos})
			}

			continue
		}

		var unusedRules []RuleName
		for _, rule := range entry.rules {
			if !enabled[rule] || !entry.used[rule] {
				unusedRules = append(unusedRules, rule)
			}
		}
		if len(unusedRules) > 0 {
			unused = append(unused, UnusedIgnore{
				Pos:   entry.pos,
				Rules: unusedRules,
			})
		}
	}

	return unused
}
