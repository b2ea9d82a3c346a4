// Package sweep evaluates the kinetic solver over the Cartesian product of
// parameter value sets.
//
// Combinations are enumerated lexicographically over the axes as given: the
// first axis varies slowest. Each combination is solved exactly once and
// tagged with its exact parameter values and a display label such as
// "σ = 1". Evaluation fans out over [dynamo.ParallelFor]; every worker writes
// only the result slots it owns, so the output order never depends on
// scheduling.
//
//	res, err := sweep.Run(ctx, sweep.Request{
//	    Axes: []sweep.Axis{
//	        {Param: kinetics.ParamTau, Values: []float64{0.5, 1, 2}},
//	        {Param: kinetics.ParamSigma, Values: []float64{0.5, 1, 2}},
//	    },
//	    Fixed: kinetics.Params{Tau: 1, Sigma: 1, Lambda: 0.1},
//	    Grid:  sweep.Linspace(0, 20, 2001),
//	})
package sweep
