package kinetics

import (
	"fmt"
	"math"

	"github.com/san-kum/splicesim/internal/dynamo"
)

// DefaultDegenerateTolerance is the relative |λ−σ| below which rates are
// treated as equal.
const DefaultDegenerateTolerance = 1e-8

type options struct {
	strict bool
	tol    float64
}

// Option adjusts Solve.
type Option func(*options)

// WithStrictRates makes Solve fail with dynamo.ErrDegenerateRates instead
// of returning the repeated-root limit.
func WithStrictRates() Option {
	return func(o *options) { o.strict = true }
}

// WithDegenerateTolerance overrides DefaultDegenerateTolerance.
func WithDegenerateTolerance(tol float64) Option {
	return func(o *options) {
		if tol >= 0 {
			o.tol = tol
		}
	}
}

// Trajectory is P(t), M(t) over a time grid.
type Trajectory struct {
	Params     Params
	Initial    Initial
	Times      []float64
	P          []float64
	M          []float64
	Degenerate bool
}

func (tr *Trajectory) Len() int {
	return len(tr.Times)
}

// Fraction returns the fraction unspliced at index i.
func (tr *Trajectory) Fraction(i int) float64 {
	return FractionUnspliced(tr.P[i], tr.M[i])
}

// Fractions returns the fraction unspliced at every grid point.
func (tr *Trajectory) Fractions() []float64 {
	f := make([]float64, len(tr.Times))
	for i := range f {
		f[i] = tr.Fraction(i)
	}
	return f
}

// State returns [P, M] at index i.
func (tr *Trajectory) State(i int) dynamo.State {
	return dynamo.State{tr.P[i], tr.M[i]}
}

// Solve evaluates the closed-form solution at every point of grid.
// Invalid rates, initial state or grid fail with dynamo.ErrInvalidParameter;
// a result that overflows fails with dynamo.ErrInvalidState.
// An empty grid yields an empty trajectory.
func Solve(p Params, x0 Initial, grid dynamo.TimeGrid, opts ...Option) (*Trajectory, error) {
	ev, err := prepare(p, x0, opts)
	if err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	n := len(grid)
	tr := &Trajectory{
		Params:     p,
		Initial:    x0,
		Times:      make([]float64, n),
		P:          make([]float64, n),
		M:          make([]float64, n),
		Degenerate: ev.degenerate,
	}
	copy(tr.Times, grid)

	for i, t := range grid {
		tr.P[i], tr.M[i] = ev.at(t)
		if !tr.State(i).IsValid() {
			return nil, fmt.Errorf("%w: P=%g M=%g at t=%g", dynamo.ErrInvalidState, tr.P[i], tr.M[i], t)
		}
	}

	return tr, nil
}

// Func validates p and x0 once and returns the closed form as a function of
// time, for callers that need points off a grid such as quadrature.
func Func(p Params, x0 Initial, opts ...Option) (func(t float64) (P, M float64), error) {
	ev, err := prepare(p, x0, opts)
	if err != nil {
		return nil, err
	}
	return ev.at, nil
}

type evaluator struct {
	p          Params
	x0         Initial
	ps, ms, dp float64
	degenerate bool
}

func prepare(p Params, x0 Initial, opts []Option) (evaluator, error) {
	o := options{tol: DefaultDegenerateTolerance}
	for _, opt := range opts {
		opt(&o)
	}

	if err := p.Validate(); err != nil {
		return evaluator{}, err
	}
	if err := x0.Validate(); err != nil {
		return evaluator{}, err
	}

	degenerate := p.Degenerate(o.tol)
	if degenerate && o.strict {
		return evaluator{}, &dynamo.ParamError{
			Name:    ParamLambda,
			Value:   p.Lambda,
			Reason:  "equals sigma within tolerance",
			Wrapped: dynamo.ErrDegenerateRates,
		}
	}

	ps, ms := p.SteadyState()
	return evaluator{p: p, x0: x0, ps: ps, ms: ms, dp: x0.P0 - ps, degenerate: degenerate}, nil
}

// at evaluates P = (P0−Ps)e^{−σt} + Ps and
// M = Mfrac·e^{−σt} + (M0−Ms−Mfrac)e^{−λt} + Ms,
// regrouped around expm1 so small t and λ≈σ keep full precision.
func (e evaluator) at(t float64) (float64, float64) {
	sigma, lambda := e.p.Sigma, e.p.Lambda
	es := math.Exp(-sigma * t)
	var phi float64
	if e.degenerate {
		phi = t * es
	} else {
		phi = expDiff(sigma, lambda, t)
	}
	p := e.x0.P0*es - e.ps*math.Expm1(-sigma*t)
	m := e.x0.M0*math.Exp(-lambda*t) - e.ms*math.Expm1(-lambda*t) + sigma*e.dp*phi
	return p, m
}

// expDiff returns (exp(−a·t) − exp(−b·t)) / (b − a) without cancellation.
// It is symmetric in a and b and tends to t·exp(−a·t) as b → a.
func expDiff(a, b, t float64) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	d := hi - lo
	if d == 0 || t == 0 {
		return t * math.Exp(-lo*t)
	}
	return math.Exp(-lo*t) * -math.Expm1(-d*t) / d
}
