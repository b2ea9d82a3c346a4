package config

import (
	"sort"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

func preset(name string, end float64, points int, axes ...sweep.Axis) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Grid.End = end
	cfg.Grid.Points = points
	cfg.Sweep = axes
	return cfg
}

func axis(param string, values []float64) sweep.Axis {
	return sweep.Axis{Param: param, Values: clone(values)}
}

// Presets reproduce the figures of the fraction-unspliced argument.
var Presets = map[string]*Config{
	"tau": preset("tau", DefaultGridEnd, DefaultGridPoints,
		axis(kinetics.ParamTau, DefaultTauValues)),
	"sigma": preset("sigma", DefaultGridEnd, DefaultGridPoints,
		axis(kinetics.ParamSigma, DefaultSigmaValues)),
	"lambda": preset("lambda", DefaultGridEnd, DefaultGridPoints,
		axis(kinetics.ParamLambda, DefaultLambdaValues)),
	"tau-sigma": preset("tau-sigma", DefaultGridEnd, DefaultGridPoints,
		axis(kinetics.ParamTau, DefaultTauValues),
		axis(kinetics.ParamSigma, DefaultSigmaValues)),
	"sigma-lambda": preset("sigma-lambda", DefaultGridEnd, DefaultGridPoints,
		axis(kinetics.ParamSigma, DefaultSigmaValues),
		axis(kinetics.ParamLambda, DefaultLambdaValues)),
	// Early labeling window at ten times the resolution.
	"zoom": preset("zoom", 2, 2001,
		axis(kinetics.ParamTau, DefaultTauValues),
		axis(kinetics.ParamSigma, DefaultSigmaValues)),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
