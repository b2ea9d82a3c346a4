// Package viz renders trajectories and sweep summaries for the terminal.
//
//   - [PlotTrajectory]: one series of a single run via asciigraph
//   - [PlotSweep]: one line per combination, legend from sweep labels
//   - [SummaryTable]: lipgloss table of combinations and their metrics
//
// # Themes
//
// Colors come from a [Theme] value passed to each renderer. There is no
// package-level current theme; callers resolve one with [GetTheme] and hand
// it down.
package viz
