package sweep_test

import (
	"context"
	"testing"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

func BenchmarkRun(b *testing.B) {
	req := sweep.Request{
		Axes: []sweep.Axis{
			{Param: kinetics.ParamTau, Values: []float64{0.5, 1, 2}},
			{Param: kinetics.ParamSigma, Values: []float64{0.5, 1, 2}},
			{Param: kinetics.ParamLambda, Values: []float64{0.05, 0.1, 0.2}},
		},
		Fixed: kinetics.Params{Tau: 1, Sigma: 1, Lambda: 0.1},
		Grid:  sweep.Linspace(0, 20, 2001),
	}
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := sweep.Run(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}
