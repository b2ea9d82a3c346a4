package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// TimeGrid is an ordered sequence of evaluation times.
type TimeGrid []float64

// Linspace returns n evenly spaced points over [start, end], both inclusive.
func Linspace(start, end float64, n int) (TimeGrid, error) {
	switch {
	case n < 0:
		return nil, NewParamError("points", float64(n), "must not be negative")
	case n == 0:
		return TimeGrid{}, nil
	case n == 1:
		g := TimeGrid{start}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		return g, nil
	}
	if !(end > start) {
		return nil, NewParamError("end", end, fmt.Sprintf("must exceed start %g", start))
	}

	g := make(TimeGrid, n)
	floats.Span(g, start, end)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate reports ErrInvalidParameter for negative, non-finite or
// non-increasing entries. An empty grid is valid.
func (g TimeGrid) Validate() error {
	for i, t := range g {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return NewParamError(fmt.Sprintf("t[%d]", i), t, "is not finite")
		}
		if t < 0 {
			return NewParamError(fmt.Sprintf("t[%d]", i), t, "is negative")
		}
		if i > 0 && t <= g[i-1] {
			return NewParamError(fmt.Sprintf("t[%d]", i), t, fmt.Sprintf("does not exceed t[%d]=%g", i-1, g[i-1]))
		}
	}
	return nil
}

// Len is the number of points.
func (g TimeGrid) Len() int { return len(g) }

// Last returns the final time or 0 for an empty grid.
func (g TimeGrid) Last() float64 {
	if len(g) == 0 {
		return 0
	}
	return g[len(g)-1]
}
