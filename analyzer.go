// Package ffiguard provides a go/analysis based analyzer that flags unsafe
// memory, resource and foreign-function usage patterns in Go code.
package ffiguard

import (
	"errors"
	"flag"
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/TogetherGame/ffiguard/internal/checker"
	"github.com/TogetherGame/ffiguard/internal/directives/ignore"
	"github.com/TogetherGame/ffiguard/internal/funcset"
)

// Default pattern lists. Bare names resolve in the foreign namespace package
// and against bodyless declarations in the analyzed package itself.
const (
	defaultMemUnsafeFuncs    = "memcpy,memmove,strcpy,strncpy,strcat,strncat,sprintf,vsprintf,gets"
	defaultMemAllocFuncs     = "malloc,calloc,realloc,aligned_alloc"
	defaultMemFreeFuncs      = "free"
	defaultIOFuncs           = "read,recv,recvfrom,os.ReadFile,io.ReadAll"
	defaultLibLoadingFuncs   = "dlopen,plugin.Open"
	defaultNonReentrantFuncs = "localtime,gmtime,ctime,asctime,strtok,rand"
	defaultForeignNamespace  = "golang.org/x/sys/unix"
)

// Flags for the analyzer.
var (
	memUnsafeFuncs     string
	memAllocFuncs      string
	memFreeFuncs       string
	ioFuncs            string
	libLoadingFuncs    string
	nonReentrantFuncs  string
	blockingFuncs      string
	allocSizeCheckFns  string
	foreignNamespace   string
	allowIOBlockingOps bool

	// Rule enable/disable flags (all enabled by default except untypedlit).
	enableMemUnsafe     bool
	enableNonReentrant  bool
	enableLibLoading    bool
	enableFallibleAlloc bool
	enableCString       bool
	enableCharRange     bool
	enableNullDeref     bool
	enableDanglingPtr   bool
	enableDoubleFree    bool
	enableStackAddr     bool
	enableBlockingOp    bool
	enableHiddenUnsafe  bool
	enableHostLayout    bool
	enableUntypedLit    bool
)

func init() {
	Analyzer.Flags.StringVar(&memUnsafeFuncs, "mem-unsafe-funcs", defaultMemUnsafeFuncs,
		"comma-separated memory-unsafe functions (bare name, pkg.Func or pkg.Type.Method)")
	Analyzer.Flags.StringVar(&memAllocFuncs, "mem-alloc-funcs", defaultMemAllocFuncs,
		"comma-separated fallible allocator functions")
	Analyzer.Flags.StringVar(&memFreeFuncs, "mem-free-funcs", defaultMemFreeFuncs,
		"comma-separated deallocator functions")
	Analyzer.Flags.StringVar(&ioFuncs, "io-funcs", defaultIOFuncs,
		"comma-separated IO functions treated as untrusted input sources")
	Analyzer.Flags.StringVar(&libLoadingFuncs, "lib-loading-funcs", defaultLibLoadingFuncs,
		"comma-separated dynamic-library loader functions")
	Analyzer.Flags.StringVar(&nonReentrantFuncs, "non-reentrant-funcs", defaultNonReentrantFuncs,
		"comma-separated non-reentrant functions")
	Analyzer.Flags.StringVar(&blockingFuncs, "blocking-funcs", "",
		"additional blocking functions for the blockingop rule")
	Analyzer.Flags.StringVar(&allocSizeCheckFns, "alloc-size-check-funcs", "",
		"comma-separated helper names accepted as allocation size validation")
	Analyzer.Flags.StringVar(&foreignNamespace, "foreign-namespace", defaultForeignNamespace,
		"package path bare function patterns resolve against")
	Analyzer.Flags.BoolVar(&allowIOBlockingOps, "allow-io-blocking", false,
		"do not treat configured IO functions as blocking in context-aware functions")

	// Rule flags (default: all enabled except untypedlit, which is pedantic
	// for idiomatic Go)
	Analyzer.Flags.BoolVar(&enableMemUnsafe, "memunsafe", true, "enable memunsafe rule")
	Analyzer.Flags.BoolVar(&enableNonReentrant, "nonreentrant", true, "enable nonreentrant rule")
	Analyzer.Flags.BoolVar(&enableLibLoading, "libloading", true, "enable libloading rule")
	Analyzer.Flags.BoolVar(&enableFallibleAlloc, "falliblealloc", true, "enable falliblealloc rule")
	Analyzer.Flags.BoolVar(&enableCString, "cstring", true, "enable cstring rule")
	Analyzer.Flags.BoolVar(&enableCharRange, "charrange", true, "enable charrange rule")
	Analyzer.Flags.BoolVar(&enableNullDeref, "nullderef", true, "enable nullderef rule")
	Analyzer.Flags.BoolVar(&enableDanglingPtr, "danglingptr", true, "enable danglingptr rule")
	Analyzer.Flags.BoolVar(&enableDoubleFree, "doublefree", true, "enable doublefree rule")
	Analyzer.Flags.BoolVar(&enableStackAddr, "stackaddr", true, "enable stackaddr rule")
	Analyzer.Flags.BoolVar(&enableBlockingOp, "blockingop", true, "enable blockingop rule")
	Analyzer.Flags.BoolVar(&enableHiddenUnsafe, "hiddenunsafe", true, "enable hiddenunsafe rule")
	Analyzer.Flags.BoolVar(&enableHostLayout, "hostlayout", true, "enable hostlayout rule")
	Analyzer.Flags.BoolVar(&enableUntypedLit, "untypedlit", false, "enable untypedlit rule")
}

// Analyzer is the main analyzer for ffiguard.
var Analyzer = &analysis.Analyzer{
	Name:     "ffiguard",
	Doc:      "flags unsafe memory, resource and foreign-function usage patterns",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	skipFiles := buildSkipFiles(pass)
	ignoreMaps := buildIgnoreMaps(pass, skipFiles)
	enabled := buildEnabledRules()

	cfg := checker.Config{
		Patterns: map[funcset.Category][]funcset.Pattern{
			funcset.MemUnsafe:    funcset.ParseList(memUnsafeFuncs),
			funcset.MemAlloc:     funcset.ParseList(memAllocFuncs),
			funcset.Free:         funcset.ParseList(memFreeFuncs),
			funcset.IO:           funcset.ParseList(ioFuncs),
			funcset.LibLoading:   funcset.ParseList(libLoadingFuncs),
			funcset.NonReentrant: funcset.ParseList(nonReentrantFuncs),
			funcset.Blocking:     funcset.ParseList(blockingFuncs),
		},
		ForeignNamespace: foreignNamespace,
		AllowIOBlocking:  allowIOBlockingOps,
		SizeCheckFuncs:   splitList(allocSizeCheckFns),
		Enabled:          enabled,
	}

	checker.New(cfg).Run(pass, insp, ignoreMaps, skipFiles)

	reportUnusedIgnores(pass, ignoreMaps, enabled)

	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped, except by the hiddenunsafe rule.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}

// buildIgnoreMaps creates ignore maps for each file in the pass.
func buildIgnoreMaps(pass *analysis.Pass, skipFiles map[string]bool) map[string]ignore.Map {
	ignoreMaps := make(map[string]ignore.Map)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = ignore.Build(pass.Fset, file)
	}

	return ignoreMaps
}

func buildEnabledRules() ignore.EnabledRules {
	return ignore.EnabledRules{
		ignore.MemUnsafe:     enableMemUnsafe,
		ignore.NonReentrant:  enableNonReentrant,
		ignore.LibLoading:    enableLibLoading,
		ignore.FallibleAlloc: enableFallibleAlloc,
		ignore.CString:       enableCString,
		ignore.CharRange:     enableCharRange,
		ignore.NullDeref:     enableNullDeref,
		ignore.DanglingPtr:   enableDanglingPtr,
		ignore.DoubleFree:    enableDoubleFree,
		ignore.StackAddr:     enableStackAddr,
		ignore.BlockingOp:    enableBlockingOp,
		ignore.HiddenUnsafe:  enableHiddenUnsafe,
		ignore.HostLayout:    enableHostLayout,
		ignore.UntypedLit:    enableUntypedLit,
	}
}

// reportUnusedIgnores reports any ignore directives that were not used.
func reportUnusedIgnores(pass *analysis.Pass, ignoreMaps map[string]ignore.Map, enabled ignore.EnabledRules) {
	for _, ignoreMap := range ignoreMaps {
		for _, unused := range ignoreMap.GetUnusedIgnores(enabled) {
			if len(unused.Rules) == 0 {
				pass.Reportf(unused.Pos, "unused ffiguard:ignore directive")
			} else {
				ruleNames := make([]string, len(unused.Rules))
				for i, r := range unused.Rules {
					ruleNames[i] = string(r)
				}
				pass.Reportf(unused.Pos, "unused ffiguard:ignore directive for rule(s): %s", strings.Join(ruleNames, ", "))
			}
		}
	}
}

func splitList(csv string) []string {
	if csv == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
