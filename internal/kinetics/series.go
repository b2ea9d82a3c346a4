package kinetics

import (
	"fmt"
	"strings"

	"github.com/san-kum/splicesim/internal/dynamo"
)

// Series selects one observable of a Trajectory.
type Series string

const (
	SeriesP        Series = "p"
	SeriesM        Series = "m"
	SeriesFraction Series = "fraction"
)

// ParseSeries accepts "p", "m" or "fraction" (also "pre-mrna", "mrna", "f").
func ParseSeries(s string) (Series, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pre-mrna", "premrna":
		return SeriesP, nil
	case "m", "mrna":
		return SeriesM, nil
	case "fraction", "f", "fraction-unspliced":
		return SeriesFraction, nil
	}
	return "", fmt.Errorf("%w: unknown series %q", dynamo.ErrInvalidParameter, s)
}

// Title is the axis label used by plots.
func (s Series) Title() string {
	switch s {
	case SeriesP:
		return "pre-mRNA P(t)"
	case SeriesM:
		return "mRNA M(t)"
	case SeriesFraction:
		return "fraction unspliced"
	}
	return string(s)
}

// Values returns the selected series. P and M share the trajectory's
// backing arrays and must not be modified.
func (tr *Trajectory) Values(s Series) []float64 {
	switch s {
	case SeriesP:
		return tr.P
	case SeriesM:
		return tr.M
	case SeriesFraction:
		return tr.Fractions()
	}
	return nil
}
