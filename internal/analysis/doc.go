// Package analysis derives summary quantities from the closed-form solution
// and from sweep results.
//
//   - [MeanFraction]: time-averaged fraction unspliced over a labeling window
//   - [TauInvariance]: spread of fraction unspliced across τ at fixed σ, λ
//   - [SteadyFractionTable]: λ/(σ+λ) over a σ × λ grid
//
// # τ Independence
//
// Under pulse labeling (P0 = M0 = 0) the spread reported by [TauInvariance]
// is zero up to rounding; a non-zero initial state breaks the invariance and
// shows up as a positive spread:
//
//	rep, _ := analysis.TauInvariance(res)
//	if rep.MaxSpread < 1e-9 {
//	    // fraction unspliced carries no information about τ
//	}
package analysis
