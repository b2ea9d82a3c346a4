package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
	"github.com/san-kum/splicesim/internal/viz"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 500
)

// Backend draws a figure to path. The format follows the file extension.
type Backend interface {
	Name() string
	Formats() []string
	Render(fig Figure, width, height int, path string) error
}

// NewBackend returns the backend registered under name.
func NewBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", "gonum":
		return GonumBackend{}, nil
	case "gochart", "go-chart":
		return GoChartBackend{}, nil
	}
	return nil, fmt.Errorf("unknown report backend %q (want gonum or gochart)", name)
}

// Options configure Write.
type Options struct {
	Dir     string
	Series  []kinetics.Series
	Facet   string
	Format  string
	Width   int
	Height  int
	Backend Backend
	Theme   viz.Theme
	Logger  *slog.Logger
}

// Write renders every series of res and returns the written paths in order.
func Write(ctx context.Context, res *sweep.Result, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Backend == nil {
		opts.Backend = GonumBackend{}
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		format = "png"
	}
	if !supports(opts.Backend, format) {
		return nil, fmt.Errorf("backend %s cannot write %q", opts.Backend.Name(), format)
	}
	if len(res.Combinations) == 0 || len(res.Grid) < 2 {
		return nil, fmt.Errorf("nothing to plot: %d combinations, %d grid points", len(res.Combinations), len(res.Grid))
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	series := opts.Series
	if len(series) == 0 {
		series = []kinetics.Series{kinetics.SeriesP, kinetics.SeriesM, kinetics.SeriesFraction}
	}
	palette := Palette(opts.Theme)

	var paths []string
	for _, s := range series {
		figs, err := Build(res, s, opts.Facet, palette)
		if err != nil {
			return nil, err
		}
		for _, fig := range figs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path := filepath.Join(opts.Dir, fig.Slug+"."+format)
			if err := opts.Backend.Render(fig, opts.Width, opts.Height, path); err != nil {
				return nil, fmt.Errorf("render %s: %w", path, err)
			}
			logger.Debug("figure written", "path", path, "lines", len(fig.Lines), "backend", opts.Backend.Name())
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func supports(b Backend, format string) bool {
	for _, f := range b.Formats() {
		if f == format {
			return true
		}
	}
	return false
}
