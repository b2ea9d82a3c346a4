package kinetics

import (
	"fmt"
	"math"

	"github.com/san-kum/splicesim/internal/dynamo"
)

// Parameter names accepted by SetParam and sweep axes.
const (
	ParamTau    = "tau"
	ParamSigma  = "sigma"
	ParamLambda = "lambda"
	ParamP0     = "p0"
	ParamM0     = "m0"
)

// Params are the rate constants of one simulation run.
type Params struct {
	Tau    float64 `json:"tau" yaml:"tau"`
	Sigma  float64 `json:"sigma" yaml:"sigma"`
	Lambda float64 `json:"lambda" yaml:"lambda"`
}

// Initial holds the pre-mRNA and mRNA counts at t=0.
type Initial struct {
	P0 float64 `json:"p0" yaml:"p0"`
	M0 float64 `json:"m0" yaml:"m0"`
}

func (p Params) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{ParamTau, p.Tau},
		{ParamSigma, p.Sigma},
		{ParamLambda, p.Lambda},
	} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return dynamo.NewParamError(c.name, c.v, "is not finite")
		}
		if c.v <= 0 {
			return dynamo.NewParamError(c.name, c.v, "must be positive")
		}
	}
	return nil
}

func (x Initial) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{ParamP0, x.P0},
		{ParamM0, x.M0},
	} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return dynamo.NewParamError(c.name, c.v, "is not finite")
		}
		if c.v < 0 {
			return dynamo.NewParamError(c.name, c.v, "must not be negative")
		}
	}
	return nil
}

// SteadyState returns Ps = τ/σ and Ms = τ/λ.
func (p Params) SteadyState() (ps, ms float64) {
	return p.Tau / p.Sigma, p.Tau / p.Lambda
}

// SteadyFraction is the long-time fraction unspliced, λ/(σ+λ). It does not depend on τ.
func (p Params) SteadyFraction() float64 {
	return p.Lambda / (p.Sigma + p.Lambda)
}

// Degenerate reports whether |λ−σ| <= tol·max(σ, λ).
func (p Params) Degenerate(tol float64) bool {
	return math.Abs(p.Lambda-p.Sigma) <= tol*math.Max(p.Sigma, p.Lambda)
}

func (p Params) String() string {
	return fmt.Sprintf("τ=%g σ=%g λ=%g", p.Tau, p.Sigma, p.Lambda)
}

// Model is the splicing ODE as a dynamo.System with state [P, M].
type Model struct {
	Params
}

var (
	_ dynamo.System       = (*Model)(nil)
	_ dynamo.Configurable = (*Model)(nil)
)

func NewModel(p Params) *Model {
	return &Model{Params: p}
}

func (m *Model) StateDim() int {
	return 2
}

func (m *Model) Derive(x dynamo.State, t float64) dynamo.State {
	p, mm := x[0], x[1]
	return dynamo.State{
		m.Tau - m.Sigma*p,
		m.Sigma*p - m.Lambda*mm,
	}
}

func (m *Model) GetParams() map[string]float64 {
	return map[string]float64{
		ParamTau:    m.Tau,
		ParamSigma:  m.Sigma,
		ParamLambda: m.Lambda,
	}
}

func (m *Model) SetParam(name string, value float64) error {
	switch name {
	case ParamTau:
		m.Tau = value
	case ParamSigma:
		m.Sigma = value
	case ParamLambda:
		m.Lambda = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// FractionUnspliced returns P/(P+M), or 0 when both are zero.
func FractionUnspliced(p, m float64) float64 {
	total := p + m
	if total == 0 {
		return 0
	}
	return p / total
}
