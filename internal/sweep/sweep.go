package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/san-kum/splicesim/internal/dynamo"
	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/logging"
	"github.com/san-kum/splicesim/internal/metrics"
)

// GridFactory produces the time grid for a sweep. It is called once per Run.
type GridFactory func() (dynamo.TimeGrid, error)

// Linspace returns a GridFactory for n evenly spaced points over [start, end].
func Linspace(start, end float64, n int) GridFactory {
	return func() (dynamo.TimeGrid, error) {
		return dynamo.Linspace(start, end, n)
	}
}

// Fixed returns a GridFactory that always yields a copy of g.
func Fixed(g dynamo.TimeGrid) GridFactory {
	return func() (dynamo.TimeGrid, error) {
		c := make(dynamo.TimeGrid, len(g))
		copy(c, g)
		return c, nil
	}
}

type Request struct {
	Axes    []Axis
	Fixed   kinetics.Params
	Initial kinetics.Initial
	Grid    GridFactory
	// Workers bounds parallel evaluation; <= 0 uses one per CPU.
	Workers int
	Options []kinetics.Option
	Metrics metrics.Factory
	Logger  *slog.Logger
}

// Combination is one point of the parameter grid.
type Combination struct {
	Index   int
	Params  kinetics.Params
	Initial kinetics.Initial
	// Values holds the exact swept values, parallel to Result.Axes.
	Values []float64
	Label  string
}

// Result holds one trajectory per combination. It is not modified after Run returns.
type Result struct {
	Axes         []Axis
	Grid         dynamo.TimeGrid
	Combinations []Combination
	Trajectories []*kinetics.Trajectory
	Metrics      []map[string]float64
	Elapsed      time.Duration
}

// Run solves every combination of req.Axes. No partial result is returned on error.
func Run(ctx context.Context, req Request) (*Result, error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if req.Grid == nil {
		return nil, fmt.Errorf("%w: nil grid factory", dynamo.ErrInvalidParameter)
	}
	if err := validateAxes(req.Axes); err != nil {
		return nil, err
	}

	grid, err := req.Grid()
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	combos := enumerate(req)

	res := &Result{
		Axes:         cloneAxes(req.Axes),
		Grid:         grid,
		Combinations: combos,
		Trajectories: make([]*kinetics.Trajectory, len(combos)),
	}
	if req.Metrics != nil {
		res.Metrics = make([]map[string]float64, len(combos))
	}
	errs := make([]error, len(combos))

	dynamo.ParallelFor(len(combos), 1, req.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			c := combos[i]
			tr, err := kinetics.Solve(c.Params, c.Initial, grid, req.Options...)
			if err != nil {
				errs[i] = fmt.Errorf("combination %q: %w", c.Label, err)
				continue
			}
			res.Trajectories[i] = tr
			logger.Log(ctx, logging.LevelTrace, "solved", "index", i, "label", c.Label, "degenerate", tr.Degenerate)
			if req.Metrics != nil {
				res.Metrics[i] = metrics.Apply(tr, req.Metrics(c.Params))
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	res.Elapsed = time.Since(start)
	logger.Debug("sweep complete",
		"combinations", len(combos),
		"grid_points", len(grid),
		"rows", res.Len(),
		"workers", req.Workers,
		"elapsed", res.Elapsed)

	return res, nil
}

func enumerate(req Request) []Combination {
	total := 1
	for _, a := range req.Axes {
		total *= len(a.Values)
	}
	out := make([]Combination, 0, total)
	expand(req, 0, make([]float64, 0, len(req.Axes)), &out)
	return out
}

func expand(req Request, depth int, current []float64, out *[]Combination) {
	if depth == len(req.Axes) {
		p, x0 := req.Fixed, req.Initial
		labels := make([]string, len(req.Axes))
		for i, a := range req.Axes {
			apply(&p, &x0, a.Param, current[i])
			labels[i] = Label(a.Param, current[i])
		}
		values := make([]float64, len(current))
		copy(values, current)

		*out = append(*out, Combination{
			Index:   len(*out),
			Params:  p,
			Initial: x0,
			Values:  values,
			Label:   strings.Join(labels, ", "),
		})
		return
	}

	for _, v := range req.Axes[depth].Values {
		expand(req, depth+1, append(current, v), out)
	}
}

func cloneAxes(axes []Axis) []Axis {
	out := make([]Axis, len(axes))
	for i, a := range axes {
		out[i] = Axis{Param: a.Param, Values: append([]float64(nil), a.Values...)}
	}
	return out
}
