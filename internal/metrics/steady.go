package metrics

import (
	"math"

	"github.com/san-kum/splicesim/internal/dynamo"
)

// SteadyStateError is the distance of the last point from (Ps, Ms),
// relative to the steady-state norm.
type SteadyStateError struct {
	name   string
	steady dynamo.State
	last   dynamo.State
}

func NewSteadyStateError(ps, ms float64) *SteadyStateError {
	return &SteadyStateError{
		name:   "steady_state_error",
		steady: dynamo.State{ps, ms},
	}
}

func (s *SteadyStateError) Name() string { return s.name }

func (s *SteadyStateError) Observe(x dynamo.State, t float64) {
	s.last = x
}

func (s *SteadyStateError) Value() float64 {
	if s.last == nil {
		return math.NaN()
	}
	norm := s.steady.Norm()
	if norm == 0 {
		return s.last.Norm()
	}
	return s.last.Sub(s.steady).Norm() / norm
}

func (s *SteadyStateError) Reset() { s.last = nil }

// RelaxationTime is the first observed time at which P reaches
// (1 − 1/e) of Ps, or NaN if it never does on the grid.
type RelaxationTime struct {
	name      string
	threshold float64
	hit       float64
	found     bool
}

func NewRelaxationTime(ps float64) *RelaxationTime {
	return &RelaxationTime{
		name:      "relaxation_time",
		threshold: (1 - math.Exp(-1)) * ps,
	}
}

func (r *RelaxationTime) Name() string { return r.name }

func (r *RelaxationTime) Observe(x dynamo.State, t float64) {
	if r.found || len(x) < 1 {
		return
	}
	if x[0] >= r.threshold {
		r.hit = t
		r.found = true
	}
}

func (r *RelaxationTime) Value() float64 {
	if !r.found {
		return math.NaN()
	}
	return r.hit
}

func (r *RelaxationTime) Reset() {
	r.hit = 0
	r.found = false
}
