package report

import (
	"os"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChartBackend draws with go-chart.
type GoChartBackend struct{}

func (GoChartBackend) Name() string      { return "gochart" }
func (GoChartBackend) Formats() []string { return []string{"png", "svg"} }

func (GoChartBackend) Render(fig Figure, width, height int, path string) (err error) {
	series := make([]chart.Series, 0, len(fig.Lines))
	for _, ln := range fig.Lines {
		series = append(series, chart.ContinuousSeries{
			Name:    ln.Name,
			XValues: ln.X,
			YValues: ln.Y,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: ln.Color.R, G: ln.Color.G, B: ln.Color.B, A: ln.Color.A},
				StrokeWidth: 2,
			},
		})
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: fig.XLabel},
		YAxis:      chart.YAxis{Name: fig.YLabel},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	render := chart.PNG
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		render = chart.SVG
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return ch.Render(render, f)
}
