// Package export writes trajectories and sweep tables as CSV or JSON for
// external report tooling. Floats are written in their shortest exact form
// so grouping columns parse back to the values that produced them.
package export
