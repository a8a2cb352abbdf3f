// Package gclplugin registers ffiguard as a golangci-lint module plugin.
package gclplugin

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/TogetherGame/ffiguard"
)

func init() { register.Plugin("ffiguard", New) }

// New creates a new [Plugin] instance with the given [Settings].
func New(rawSettings any) (register.LinterPlugin, error) {
	settings, err := register.DecodeSettings[Settings](rawSettings)
	if err != nil {
		return nil, err
	}

	return Plugin{settings: settings}, nil
}

// Plugin is the ffiguard linter as a [register.LinterPlugin].
type Plugin struct {
	settings Settings
}

// GetLoadMode returns the golangci load mode.
func (Plugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}

// BuildAnalyzers returns the [analysis.Analyzer]s for an ffiguard run.
func (p Plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	if err := p.settings.apply(&ffiguard.Analyzer.Flags); err != nil {
		return nil, err
	}

	return []*analysis.Analyzer{ffiguard.Analyzer}, nil
}
