package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/splicesim/internal/analysis"
	"github.com/san-kum/splicesim/internal/config"
	"github.com/san-kum/splicesim/internal/export"
	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/logging"
	"github.com/san-kum/splicesim/internal/metrics"
	"github.com/san-kum/splicesim/internal/report"
	"github.com/san-kum/splicesim/internal/sweep"
	"github.com/san-kum/splicesim/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	strict     bool
	workers    int
	theme      string

	// Rate and initial-state flags take one value (fixed) or a comma list (swept).
	tauFlag    string
	sigmaFlag  string
	lambdaFlag string
	p0Flag     string
	m0Flag     string

	tStart float64
	tEnd   float64
	points int

	plotSeries string
	plotWidth  int
	plotHeight int
	doPlot     bool

	reportSeries string
	reportWidth  int
	reportHeight int
	outDir       string
	backend      string
	format       string

	facet   string
	outPath string
)

// resolved per invocation in PersistentPreRunE
var (
	cfg    *config.Config
	logger *slog.Logger
)

var paramFlags = []struct {
	param string
	value *string
}{
	{kinetics.ParamTau, &tauFlag},
	{kinetics.ParamSigma, &sigmaFlag},
	{kinetics.ParamLambda, &lambdaFlag},
	{kinetics.ParamP0, &p0Flag},
	{kinetics.ParamM0, &m0Flag},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering the flags resets the
// package-level flag variables to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "splicesim",
		Short:             "closed-form transcription, splicing and decay kinetics",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail when sigma and lambda coincide")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "sweep workers (0 = one per CPU)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve a single trajectory",
		RunE:  runSolve,
	}
	addModelFlags(solveCmd)
	solveCmd.Flags().BoolVar(&doPlot, "plot", false, "draw the trajectory")
	solveCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the trajectory as CSV to this file")
	addPlotFlags(solveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve every parameter combination and summarize",
		RunE:  runSweepSummary,
	}
	addModelFlags(sweepCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a sweep in the terminal",
		RunE:  runPlot,
	}
	addModelFlags(plotCmd)
	addPlotFlags(plotCmd)
	plotCmd.Flags().StringVar(&facet, "facet", "", "one plot per value of this parameter")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export sweep data to CSV",
		RunE:  exportCSV,
	}
	addModelFlags(exportCSVCmd)
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export sweep data to JSON",
		RunE:  exportJSON,
	}
	addModelFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "render sweep figures to image files",
		RunE:  runReport,
	}
	addModelFlags(reportCmd)
	reportCmd.Flags().StringVar(&outDir, "out-dir", "figures", "output directory")
	reportCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "figure backend (gonum, gochart)")
	reportCmd.Flags().StringVar(&format, "format", "png", "image format (png, svg)")
	reportCmd.Flags().StringVar(&reportSeries, "series", "p,m,fraction", "series to draw")
	reportCmd.Flags().StringVar(&facet, "facet", "", "one figure per value of this parameter (default first axis)")
	reportCmd.Flags().IntVar(&reportWidth, "width", report.DefaultWidth, "figure width in pixels")
	reportCmd.Flags().IntVar(&reportHeight, "height", report.DefaultHeight, "figure height in pixels")

	invarianceCmd := &cobra.Command{
		Use:   "invariance",
		Short: "check that fraction unspliced does not depend on tau",
		RunE:  runInvariance,
	}
	addModelFlags(invarianceCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(solveCmd, sweepCmd, plotCmd, exportCSVCmd, exportJSONCmd, reportCmd, invarianceCmd, presetsCmd)
	return rootCmd
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tauFlag, "tau", "", "transcription rate, or comma list to sweep")
	cmd.Flags().StringVar(&sigmaFlag, "sigma", "", "splicing rate, or comma list to sweep")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "mRNA decay rate, or comma list to sweep")
	cmd.Flags().StringVar(&p0Flag, "p0", "", "initial pre-mRNA, or comma list to sweep")
	cmd.Flags().StringVar(&m0Flag, "m0", "", "initial mRNA, or comma list to sweep")
	cmd.Flags().Float64Var(&tStart, "t-start", config.DefaultGridStart, "first time point")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultGridEnd, "last time point")
	cmd.Flags().IntVar(&points, "points", config.DefaultGridPoints, "number of time points")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&plotSeries, "series", "fraction", "series to plot (p, m, fraction; comma list)")
	cmd.Flags().IntVar(&plotWidth, "width", viz.DefaultPlotWidth, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", viz.DefaultPlotHeight, "plot height")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	cfg = c
	logger = logging.NewLogger(c.LogLevel, os.Stderr)
	logger.Debug("configuration resolved",
		"preset", preset,
		"config", configFile,
		"params", c.Params().String(),
		"axes", len(c.Sweep),
		"grid_points", c.Grid.Points)
	return nil
}

// resolveConfig layers defaults < preset < config file < env < changed flags.
// A model flag with one value fixes that parameter and drops its axis; a
// comma list sweeps it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c = p
	}

	if configFile != "" {
		loaded, err := config.Overlay(configFile, c)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("strict") {
		c.Solver.Strict = strict
	}
	if flags.Changed("workers") {
		c.Workers = workers
	}
	if flags.Changed("theme") {
		c.Report.Theme = theme
	}
	if flags.Changed("t-start") {
		c.Grid.Start = tStart
	}
	if flags.Changed("t-end") {
		c.Grid.End = tEnd
	}
	if flags.Changed("points") {
		c.Grid.Points = points
	}
	if flags.Changed("backend") {
		c.Report.Backend = backend
	}
	if flags.Changed("format") {
		c.Report.Format = format
	}

	for _, pf := range paramFlags {
		if !flags.Changed(pf.param) {
			continue
		}
		values, err := sweep.ParseValues(*pf.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", pf.param, err)
		}
		if len(values) == 1 {
			if err := c.SetValue(pf.param, values[0]); err != nil {
				return nil, err
			}
			c.RemoveAxis(pf.param)
			continue
		}
		c.SetAxis(pf.param, values)
	}
	return c, nil
}

func currentTheme() viz.Theme {
	th, ok := viz.GetTheme(cfg.Report.Theme)
	if !ok {
		logger.Warn("unknown theme, using default", "theme", cfg.Report.Theme, "available", viz.ThemeNames())
	}
	return th
}

func parseSeries(s string) ([]kinetics.Series, error) {
	var out []kinetics.Series
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ks, err := kinetics.ParseSeries(part)
		if err != nil {
			return nil, err
		}
		out = append(out, ks)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no series selected")
	}
	return out, nil
}

func runSweep(ctx context.Context) (*sweep.Result, error) {
	res, err := sweep.Run(ctx, sweep.Request{
		Axes:    cfg.Sweep,
		Fixed:   cfg.Params(),
		Initial: cfg.Initial(),
		Grid:    cfg.GridFactory(),
		Workers: cfg.Workers,
		Options: cfg.SolveOptions(),
		Metrics: metrics.Default,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	if len(cfg.Sweep) == 0 {
		logger.Info("no sweep axes; evaluating a single combination")
	}
	return res, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	if anyParamFlagList(cmd) {
		return fmt.Errorf("solve takes single values; use sweep for comma lists")
	}

	grid, err := cfg.GridFactory()()
	if err != nil {
		return err
	}
	p, x0 := cfg.Params(), cfg.Initial()
	tr, err := kinetics.Solve(p, x0, grid, cfg.SolveOptions()...)
	if err != nil {
		return err
	}
	if tr.Degenerate {
		logger.Warn("sigma and lambda coincide; using repeated-root limit", "sigma", p.Sigma, "lambda", p.Lambda)
	}

	values := metrics.Apply(tr, metrics.Default(p))
	if tr.Len() > 1 {
		mean, err := analysis.MeanFraction(p, x0, grid[0], grid.Last(), cfg.SolveOptions()...)
		if err != nil {
			return err
		}
		values["mean_fraction"] = mean
	}

	th := currentTheme()
	fmt.Println(viz.TrajectorySummary(tr, values, th))

	if outPath != "" {
		if err := writeOut(func(w io.Writer) error {
			return export.WriteTrajectoryCSV(w, tr)
		}); err != nil {
			return err
		}
	}

	if !doPlot || tr.Len() == 0 {
		return nil
	}
	ss, err := parseSeries(plotSeries)
	if err != nil {
		return err
	}
	for _, s := range ss {
		fmt.Println()
		fmt.Println(viz.PlotTrajectory(tr, s, th, viz.PlotOptions{Width: plotWidth, Height: plotHeight}))
	}
	return nil
}

func anyParamFlagList(cmd *cobra.Command) bool {
	for _, pf := range paramFlags {
		if cmd.Flags().Changed(pf.param) && strings.Contains(*pf.value, ",") {
			return true
		}
	}
	return false
}

func runSweepSummary(cmd *cobra.Command, args []string) error {
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(viz.SummaryTable(res, currentTheme()))
	fmt.Printf("rows: %d  completed in %v\n", res.Len(), res.Elapsed)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	ss, err := parseSeries(plotSeries)
	if err != nil {
		return err
	}
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}

	th := currentTheme()
	for _, s := range ss {
		out, err := viz.PlotSweep(res, s, th, viz.PlotOptions{Width: plotWidth, Height: plotHeight, Facet: facet})
		if err != nil {
			return err
		}
		fmt.Println(out)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}
	return writeOut(func(w io.Writer) error {
		return export.WriteSweepCSV(w, res)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}
	return writeOut(func(w io.Writer) error {
		return export.WriteJSON(w, export.NewSweepData(res))
	})
}

func writeOut(write func(io.Writer) error) error {
	if outPath == "" {
		return write(os.Stdout)
	}
	if err := export.WriteFile(outPath, write); err != nil {
		return err
	}
	logger.Info("exported", "path", outPath)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	ss, err := parseSeries(reportSeries)
	if err != nil {
		return err
	}
	b, err := report.NewBackend(cfg.Report.Backend)
	if err != nil {
		return err
	}
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}

	f := facet
	if f == "" && len(res.Axes) > 1 {
		f = res.Axes[0].Param
	}

	paths, err := report.Write(cmd.Context(), res, report.Options{
		Dir:     outDir,
		Series:  ss,
		Facet:   f,
		Format:  cfg.Report.Format,
		Width:   reportWidth,
		Height:  reportHeight,
		Backend: b,
		Theme:   currentTheme(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Println(p)
	}
	logger.Info("report written", "figures", len(paths), "backend", b.Name(), "dir", outDir)
	return nil
}

func runInvariance(cmd *cobra.Command, args []string) error {
	if idx := axisIndex(cfg.Sweep, kinetics.ParamTau); idx < 0 {
		cfg.SetAxis(kinetics.ParamTau, config.DefaultTauValues)
	}
	res, err := runSweep(cmd.Context())
	if err != nil {
		return err
	}

	rep, err := analysis.TauInvariance(res)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tMEMBERS\tMAX SPREAD\tMEAN STDDEV")
	for _, g := range rep.Groups {
		fmt.Fprintf(w, "%s\t%d\t%.3g\t%.3g\n", g.Label, g.Members, g.MaxSpread, g.MeanStdDev)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nmax spread across tau: %.3g\n\n", rep.MaxSpread)

	sigmas := axisValues(cfg.Sweep, kinetics.ParamSigma, cfg.Rates.Sigma)
	lambdas := axisValues(cfg.Sweep, kinetics.ParamLambda, cfg.Rates.Lambda)
	table := analysis.SteadyFractionTable(sigmas, lambdas)

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"σ \\ λ"}
	for _, l := range lambdas {
		header = append(header, strconv.FormatFloat(l, 'g', -1, 64))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i, s := range sigmas {
		row := []string{strconv.FormatFloat(s, 'g', -1, 64)}
		for _, f := range table[i] {
			row = append(row, strconv.FormatFloat(f, 'f', 4, 64))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func axisIndex(axes []sweep.Axis, param string) int {
	for i, a := range axes {
		if a.Param == param {
			return i
		}
	}
	return -1
}

func axisValues(axes []sweep.Axis, param string, fixed float64) []float64 {
	if i := axisIndex(axes, param); i >= 0 {
		return axes[i].Values
	}
	return []float64{fixed}
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAXES\tGRID")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		axes := make([]string, len(p.Sweep))
		for i, a := range p.Sweep {
			vals := make([]string, len(a.Values))
			for j, v := range a.Values {
				vals[j] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			axes[i] = sweep.Symbol(a.Param) + "=" + strings.Join(vals, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t[%g, %g] × %d\n", name, strings.Join(axes, " "), p.Grid.Start, p.Grid.End, p.Grid.Points)
	}
	return w.Flush()
}
