package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

const (
	DefaultTau        = 1.0
	DefaultSigma      = 1.0
	DefaultLambda     = 0.1
	DefaultP0         = 0.0
	DefaultM0         = 0.0
	DefaultGridStart  = 0.0
	DefaultGridEnd    = 20.0
	DefaultGridPoints = 2001
	DefaultLogLevel   = "info"
	DefaultBackend    = "gonum"
	DefaultTheme      = "minimal"
)

// Default sweep value sets.
var (
	DefaultTauValues    = []float64{0.5, 1, 2}
	DefaultSigmaValues  = []float64{0.5, 1, 2}
	DefaultLambdaValues = []float64{0.05, 0.1, 0.2}
)

type Config struct {
	Name   string          `yaml:"name,omitempty"`
	Rates  RatesConfig     `yaml:"rates"`
	Init   InitStateConfig `yaml:"init_state"`
	Grid   GridConfig      `yaml:"grid"`
	Sweep  []sweep.Axis    `yaml:"sweep,omitempty" env:"-"`
	Solver SolverConfig    `yaml:"solver"`
	Report ReportConfig    `yaml:"report"`
	// Workers bounds sweep parallelism; 0 uses one per CPU.
	Workers  int    `yaml:"workers" env:"SPLICESIM_WORKERS"`
	LogLevel string `yaml:"log_level" env:"SPLICESIM_LOG_LEVEL"`
}

type RatesConfig struct {
	Tau    float64 `yaml:"tau" env:"SPLICESIM_TAU"`
	Sigma  float64 `yaml:"sigma" env:"SPLICESIM_SIGMA"`
	Lambda float64 `yaml:"lambda" env:"SPLICESIM_LAMBDA"`
}

type InitStateConfig struct {
	P0 float64 `yaml:"p0" env:"SPLICESIM_P0"`
	M0 float64 `yaml:"m0" env:"SPLICESIM_M0"`
}

type GridConfig struct {
	Start  float64 `yaml:"start" env:"SPLICESIM_GRID_START"`
	End    float64 `yaml:"end" env:"SPLICESIM_GRID_END"`
	Points int     `yaml:"points" env:"SPLICESIM_GRID_POINTS"`
}

type SolverConfig struct {
	// Strict rejects λ ≈ σ instead of using the repeated-root limit.
	Strict    bool    `yaml:"strict" env:"SPLICESIM_STRICT"`
	Tolerance float64 `yaml:"tolerance" env:"SPLICESIM_DEGENERATE_TOL"`
}

type ReportConfig struct {
	Backend string `yaml:"backend" env:"SPLICESIM_REPORT_BACKEND"`
	Theme   string `yaml:"theme" env:"SPLICESIM_REPORT_THEME"`
	Format  string `yaml:"format" env:"SPLICESIM_REPORT_FORMAT"`
}

func DefaultConfig() *Config {
	return &Config{
		Rates: RatesConfig{
			Tau:    DefaultTau,
			Sigma:  DefaultSigma,
			Lambda: DefaultLambda,
		},
		Init: InitStateConfig{
			P0: DefaultP0,
			M0: DefaultM0,
		},
		Grid: GridConfig{
			Start:  DefaultGridStart,
			End:    DefaultGridEnd,
			Points: DefaultGridPoints,
		},
		Sweep: []sweep.Axis{
			{Param: kinetics.ParamTau, Values: clone(DefaultTauValues)},
			{Param: kinetics.ParamSigma, Values: clone(DefaultSigmaValues)},
		},
		Solver: SolverConfig{
			Tolerance: kinetics.DefaultDegenerateTolerance,
		},
		Report: ReportConfig{
			Backend: DefaultBackend,
			Theme:   DefaultTheme,
			Format:  "png",
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads a YAML file on top of a copy of base. Keys missing from the
// file keep base's values; a sweep list in the file replaces base's axes.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from SPLICESIM_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Params() kinetics.Params {
	return kinetics.Params{Tau: c.Rates.Tau, Sigma: c.Rates.Sigma, Lambda: c.Rates.Lambda}
}

func (c *Config) Initial() kinetics.Initial {
	return kinetics.Initial{P0: c.Init.P0, M0: c.Init.M0}
}

func (c *Config) GridFactory() sweep.GridFactory {
	return sweep.Linspace(c.Grid.Start, c.Grid.End, c.Grid.Points)
}

func (c *Config) SolveOptions() []kinetics.Option {
	opts := []kinetics.Option{kinetics.WithDegenerateTolerance(c.Solver.Tolerance)}
	if c.Solver.Strict {
		opts = append(opts, kinetics.WithStrictRates())
	}
	return opts
}

// SetValue fixes param to v for every run.
func (c *Config) SetValue(param string, v float64) error {
	switch param {
	case kinetics.ParamTau:
		c.Rates.Tau = v
	case kinetics.ParamSigma:
		c.Rates.Sigma = v
	case kinetics.ParamLambda:
		c.Rates.Lambda = v
	case kinetics.ParamP0:
		c.Init.P0 = v
	case kinetics.ParamM0:
		c.Init.M0 = v
	default:
		return fmt.Errorf("unknown param: %s", param)
	}
	return nil
}

// RemoveAxis drops the sweep axis for param, if any.
func (c *Config) RemoveAxis(param string) {
	out := c.Sweep[:0]
	for _, a := range c.Sweep {
		if a.Param != param {
			out = append(out, a)
		}
	}
	c.Sweep = out
}

// SetAxis replaces or appends the sweep axis for param.
func (c *Config) SetAxis(param string, values []float64) {
	for i := range c.Sweep {
		if c.Sweep[i].Param == param {
			c.Sweep[i].Values = clone(values)
			return
		}
	}
	c.Sweep = append(c.Sweep, sweep.Axis{Param: param, Values: clone(values)})
}

// Clone returns a deep copy so presets are never mutated.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Sweep = make([]sweep.Axis, len(c.Sweep))
	for i, a := range c.Sweep {
		cp.Sweep[i] = sweep.Axis{Param: a.Param, Values: clone(a.Values)}
	}
	return &cp
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
