package report

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
	"github.com/san-kum/splicesim/internal/viz"
)

// Line is one series of a figure.
type Line struct {
	Name  string
	X, Y  []float64
	Color color.RGBA
}

// Figure is a single chart: one facet value of one observable.
type Figure struct {
	// Slug names the output file without extension.
	Slug   string
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// Build lays out res as figures of series s. With facet empty every
// combination shares one figure; otherwise there is one figure per value
// of facet and each line is one combination within it.
func Build(res *sweep.Result, s kinetics.Series, facet string, palette []color.RGBA) ([]Figure, error) {
	if facet != "" && res.AxisIndex(facet) < 0 {
		return nil, fmt.Errorf("facet %q is not a swept parameter", facet)
	}

	if facet == "" {
		all := make([]int, len(res.Combinations))
		for i := range all {
			all[i] = i
		}
		return []Figure{figure(res, s, string(s), s.Title(), all, "", palette)}, nil
	}

	groups := res.GroupBy(facet)
	figs := make([]Figure, 0, len(groups))
	for _, g := range groups {
		slug := fmt.Sprintf("%s_%s-%s", s, facet, strconv.FormatFloat(g.Value, 'g', -1, 64))
		figs = append(figs, figure(res, s, slug, s.Title()+", "+g.Label, g.Indices, facet, palette))
	}
	return figs, nil
}

func figure(res *sweep.Result, s kinetics.Series, slug, title string, idx []int, skip string, palette []color.RGBA) Figure {
	fig := Figure{
		Slug:   slug,
		Title:  title,
		XLabel: "time",
		YLabel: s.Title(),
		Lines:  make([]Line, 0, len(idx)),
	}
	for k, i := range idx {
		tr := res.Trajectories[i]
		fig.Lines = append(fig.Lines, Line{
			Name:  lineName(res, i, skip),
			X:     tr.Times,
			Y:     tr.Values(s),
			Color: palette[k%len(palette)],
		})
	}
	return fig
}

func lineName(res *sweep.Result, i int, skip string) string {
	c := res.Combinations[i]
	parts := make([]string, 0, len(res.Axes))
	for k, a := range res.Axes {
		if a.Param != skip {
			parts = append(parts, sweep.Label(a.Param, c.Values[k]))
		}
	}
	if len(parts) == 0 {
		return c.Label
	}
	return strings.Join(parts, ", ")
}

// Palette converts a terminal theme to line colors for a white background.
// Colors too light to read on white are skipped; if none remain a fixed
// fallback palette is used.
func Palette(t viz.Theme) []color.RGBA {
	var out []color.RGBA
	for _, c := range t.Palette() {
		rgba, ok := parseHex(string(c))
		if !ok || luminance(rgba) > 0.8 {
			continue
		}
		out = append(out, rgba)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

var fallback = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
}

func parseHex(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

func luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}
