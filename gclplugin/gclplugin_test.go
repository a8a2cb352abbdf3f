package gclplugin_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/golangci/plugin-module-register/register"

	"github.com/TogetherGame/ffiguard"
	"github.com/TogetherGame/ffiguard/gclplugin"
)

const allSettings = `{
	"mem-unsafe-funcs": "memcpy",
	"mem-alloc-funcs": "malloc",
	"mem-free-funcs": "free",
	"io-funcs": "read",
	"lib-loading-funcs": "dlopen",
	"non-reentrant-funcs": "strtok",
	"blocking-funcs": "example.com/db.Query",
	"alloc-size-check-funcs": "validSize",
	"foreign-namespace": "example.com/ffi",
	"allow-io-blocking": true,
	"memunsafe": true,
	"nonreentrant": true,
	"libloading": true,
	"falliblealloc": true,
	"cstring": true,
	"charrange": true,
	"nullderef": true,
	"danglingptr": true,
	"doublefree": true,
	"stackaddr": true,
	"blockingop": true,
	"hiddenunsafe": true,
	"hostlayout": true,
	"untypedlit": true
}`

// Every configurable flag must have a matching settings field.
func TestSettingsCoverAllFlags(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(allSettings))
	dec.DisallowUnknownFields()

	var s gclplugin.Settings
	if err := dec.Decode(&s); err != nil {
		t.Fatalf("Can't decode settings: %v", err)
	}
}

func TestBuildAnalyzers(t *testing.T) {
	plugin, err := gclplugin.New(map[string]any{
		"untypedlit":        true,
		"foreign-namespace": "example.com/ffi",
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	defer func() {
		_ = ffiguard.Analyzer.Flags.Set("untypedlit", "false")
		_ = ffiguard.Analyzer.Flags.Set("foreign-namespace", "golang.org/x/sys/unix")
	}()

	if mode := plugin.GetLoadMode(); mode != register.LoadModeTypesInfo {
		t.Errorf("GetLoadMode() = %q, want %q", mode, register.LoadModeTypesInfo)
	}

	analyzers, err := plugin.BuildAnalyzers()
	if err != nil {
		t.Fatalf("BuildAnalyzers() failed: %v", err)
	}
	if len(analyzers) != 1 || analyzers[0].Name != "ffiguard" {
		t.Fatalf("BuildAnalyzers() = %v, want the ffiguard analyzer", analyzers)
	}

	if got := ffiguard.Analyzer.Flags.Lookup("untypedlit").Value.String(); got != "true" {
		t.Errorf("untypedlit flag = %q, want %q", got, "true")
	}
	if got := ffiguard.Analyzer.Flags.Lookup("foreign-namespace").Value.String(); got != "example.com/ffi" {
		t.Errorf("foreign-namespace flag = %q, want %q", got, "example.com/ffi")
	}
}

func TestNewRejectsMalformedSettings(t *testing.T) {
	if _, err := gclplugin.New(map[string]any{"untypedlit": "not-a-bool"}); err == nil {
		t.Error("expected an error for malformed settings")
	}
}
