package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// GonumBackend draws with gonum.org/v1/plot.
type GonumBackend struct{}

func (GonumBackend) Name() string      { return "gonum" }
func (GonumBackend) Formats() []string { return []string{"png", "svg", "pdf"} }

func (GonumBackend) Render(fig Figure, width, height int, path string) error {
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for _, ln := range fig.Lines {
		pts := make(plotter.XYs, len(ln.X))
		for i := range ln.X {
			pts[i].X = ln.X[i]
			pts[i].Y = ln.Y[i]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = ln.Color
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(ln.Name, l)
	}

	// vgimg rasterizes at 96 dpi.
	return p.Save(pixels(width), pixels(height), path)
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}
