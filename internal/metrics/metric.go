package metrics

import (
	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
)

// Metric accumulates a scalar summary over the points of a trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Factory builds fresh metrics for one parameter combination.
type Factory func(p kinetics.Params) []Metric

// Default returns the metrics reported by the CLI for every run.
func Default(p kinetics.Params) []Metric {
	ps, ms := p.SteadyState()
	return []Metric{
		NewFinalFraction(),
		NewPeakFraction(),
		NewSteadyStateError(ps, ms),
		NewRelaxationTime(ps),
	}
}

// Apply resets ms, feeds every point of tr through them and collects the values by name.
func Apply(tr *kinetics.Trajectory, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
	}
	for i, t := range tr.Times {
		x := tr.State(i)
		for _, m := range ms {
			m.Observe(x, t)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
