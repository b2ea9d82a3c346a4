// Package dynamo provides core primitives shared by the kinetic solver and
// the sweep evaluator.
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides (dX/dt = f(X, t))
//   - [TimeGrid]: ordered, strictly increasing evaluation times
//   - [ParamError]: structured validation failure wrapping [ErrInvalidParameter]
//   - [ParallelFor]: bounded fan-out over an index range
//
// # Example
//
//	grid, _ := dynamo.Linspace(0, 20, 2001)
//	traj, err := kinetics.Solve(params, kinetics.Initial{}, grid)
//
// # Thread Safety
//
// Every type in this package is a value or read-only after construction.
// Callers of [ParallelFor] must confine writes to the index range they own.
package dynamo
