// Package kinetics implements the closed-form solution of the linear
// transcription → splicing → decay model:
//
//	dP/dt = τ − σ·P
//	dM/dt = σ·P − λ·M
//
// where P is pre-mRNA, M is mature mRNA, τ the transcription rate, σ the
// splicing rate and λ the decay rate.
//
//   - [Solve]: exact trajectory over a [dynamo.TimeGrid]
//   - [Model]: the ODE right-hand side, implementing [dynamo.System] and [dynamo.Configurable]
//   - [FractionUnspliced]: P/(P+M) with 0/0 defined as 0
//
// # Degenerate Rates
//
// When λ equals σ the textbook formula divides by zero. [Solve] evaluates
// the mRNA term through expm1 so the repeated-root limit t·exp(−σt) is
// returned instead. Pass [WithStrictRates] to reject such inputs with
// [dynamo.ErrDegenerateRates].
//
// # Pulse Labeling
//
// Starting from P0 = M0 = 0 mimics a 4tU pulse. In that regime P and M both
// scale linearly with τ, so the fraction unspliced depends only on σ and λ:
//
//	traj, _ := kinetics.Solve(kinetics.Params{Tau: 1, Sigma: 1, Lambda: 0.1}, kinetics.Initial{}, grid)
//	f := traj.Fraction(len(grid) - 1)
package kinetics
