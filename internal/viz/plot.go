package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

const (
	DefaultPlotWidth  = 72
	DefaultPlotHeight = 14
)

// PlotOptions control asciigraph output.
type PlotOptions struct {
	Width  int
	Height int
	// Facet splits a sweep into one plot per value of this parameter.
	Facet string
}

func (o PlotOptions) withDefaults() PlotOptions {
	if o.Width <= 0 {
		o.Width = DefaultPlotWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultPlotHeight
	}
	return o
}

// PlotTrajectory draws one series of a single run.
func PlotTrajectory(tr *kinetics.Trajectory, s kinetics.Series, theme Theme, opts PlotOptions) string {
	opts = opts.withDefaults()
	data := finite(tr.Values(s))
	if len(data) == 0 {
		return theme.Styles().Muted.Render("(no data)")
	}

	caption := fmt.Sprintf("%s  %s", s.Title(), tr.Params)
	return asciigraph.Plot(data,
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(seriesColor(theme, 0)),
	)
}

// PlotSweep draws one line per combination. With opts.Facet set, each facet
// value gets its own plot and legends omit the facet parameter.
func PlotSweep(res *sweep.Result, s kinetics.Series, theme Theme, opts PlotOptions) (string, error) {
	opts = opts.withDefaults()
	if len(res.Combinations) == 0 || len(res.Grid) == 0 {
		return theme.Styles().Muted.Render("(no data)"), nil
	}

	if opts.Facet == "" {
		all := make([]int, len(res.Combinations))
		for i := range all {
			all[i] = i
		}
		return plotMany(res, all, s, theme, opts, s.Title(), ""), nil
	}

	if res.AxisIndex(opts.Facet) < 0 {
		return "", fmt.Errorf("facet %q is not a swept parameter", opts.Facet)
	}

	st := theme.Styles()
	var b strings.Builder
	for i, g := range res.GroupBy(opts.Facet) {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(st.Separator(opts.Width))
			b.WriteString("\n\n")
		}
		b.WriteString(plotMany(res, g.Indices, s, theme, opts, s.Title()+"  "+g.Label, opts.Facet))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func plotMany(res *sweep.Result, idx []int, s kinetics.Series, theme Theme, opts PlotOptions, caption, skip string) string {
	data := make([][]float64, 0, len(idx))
	legends := make([]string, 0, len(idx))
	colors := make([]asciigraph.AnsiColor, 0, len(idx))
	for k, i := range idx {
		vals := finite(res.Trajectories[i].Values(s))
		if len(vals) == 0 {
			continue
		}
		data = append(data, vals)
		legends = append(legends, legend(res, i, skip))
		colors = append(colors, seriesColor(theme, k))
	}
	if len(data) == 0 {
		return theme.Styles().Muted.Render("(no data)")
	}

	return asciigraph.PlotMany(data,
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

// legend labels combination i by its swept values, leaving out skip.
func legend(res *sweep.Result, i int, skip string) string {
	c := res.Combinations[i]
	parts := make([]string, 0, len(res.Axes))
	for k, a := range res.Axes {
		if a.Param == skip {
			continue
		}
		parts = append(parts, sweep.Label(a.Param, c.Values[k]))
	}
	if len(parts) == 0 {
		return c.Label
	}
	return strings.Join(parts, ", ")
}

func seriesColor(theme Theme, i int) asciigraph.AnsiColor {
	if len(theme.Series) == 0 {
		return asciigraph.Default
	}
	return theme.Series[i%len(theme.Series)]
}

// finite replaces NaN and ±Inf with the previous finite value so asciigraph
// can scale the axis.
func finite(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	last := math.NaN()
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			if math.IsNaN(last) {
				continue
			}
			x = last
		}
		out = append(out, x)
		last = x
	}
	return out
}
