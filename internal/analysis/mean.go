package analysis

import (
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
)

// DefaultQuadraturePoints is the Gauss-Legendre order used by MeanFraction.
const DefaultQuadraturePoints = 128

// MeanFraction returns (1/(t1−t0))·∫ f(t) dt over [t0, t1], with f the
// fraction unspliced of the closed-form solution.
func MeanFraction(p kinetics.Params, x0 kinetics.Initial, t0, t1 float64, opts ...kinetics.Option) (float64, error) {
	if err := (dynamo.TimeGrid{t0, t1}).Validate(); err != nil {
		return 0, err
	}
	at, err := kinetics.Func(p, x0, opts...)
	if err != nil {
		return 0, err
	}

	f := func(t float64) float64 {
		pp, mm := at(t)
		return kinetics.FractionUnspliced(pp, mm)
	}
	integral := quad.Fixed(f, t0, t1, DefaultQuadraturePoints, nil, 0)
	return integral / (t1 - t0), nil
}

// SteadyFractionTable returns λ/(σ+λ) with rows indexed by sigmas and
// columns by lambdas.
func SteadyFractionTable(sigmas, lambdas []float64) [][]float64 {
	table := make([][]float64, len(sigmas))
	for i, s := range sigmas {
		table[i] = make([]float64, len(lambdas))
		for j, l := range lambdas {
			table[i][j] = kinetics.Params{Tau: 1, Sigma: s, Lambda: l}.SteadyFraction()
		}
	}
	return table
}
