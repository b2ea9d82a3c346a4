package viz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/splicesim/internal/kinetics"
	"github.com/san-kum/splicesim/internal/sweep"
)

const sparkWidth = 16

// SummaryTable renders one row per combination: swept values, every metric
// and a sparkline of the fraction unspliced.
func SummaryTable(res *sweep.Result, theme Theme) string {
	st := theme.Styles()

	names := metricNames(res.Metrics)
	headers := []string{"#"}
	for _, a := range res.Axes {
		headers = append(headers, sweep.Symbol(a.Param))
	}
	headers = append(headers, names...)
	headers = append(headers, "fraction")

	rows := make([][]string, 0, len(res.Combinations))
	for i, c := range res.Combinations {
		row := []string{strconv.Itoa(c.Index)}
		for _, v := range c.Values {
			row = append(row, formatValue(v))
		}
		for _, n := range names {
			row = append(row, formatValue(res.Metrics[i][n]))
		}
		row = append(row, st.Sparkline(res.Trajectories[i].Fractions(), sparkWidth))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.Header
			case col == 0:
				return st.Muted.Padding(0, 1)
			default:
				return st.Cell
			}
		})

	title := st.Title.Render(fmt.Sprintf("%d combinations × %d points", len(res.Combinations), len(res.Grid)))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// TrajectorySummary renders parameters, steady state and metrics of one run
// inside a titled box.
func TrajectorySummary(tr *kinetics.Trajectory, values map[string]float64, theme Theme) string {
	st := theme.Styles()
	ps, ms := tr.Params.SteadyState()

	lines := []string{
		kv(st, "τ σ λ", tr.Params.String()),
		kv(st, "P₀ M₀", fmt.Sprintf("%s, %s", formatValue(tr.Initial.P0), formatValue(tr.Initial.M0))),
		kv(st, "steady", fmt.Sprintf("Ps=%s Ms=%s", formatValue(ps), formatValue(ms))),
		kv(st, "points", strconv.Itoa(tr.Len())),
	}
	if tr.Degenerate {
		lines = append(lines, st.Warn.Render("σ ≈ λ: repeated-root limit used"))
	}
	for _, n := range metricNames([]map[string]float64{values}) {
		lines = append(lines, kv(st, n, formatValue(values[n])))
	}
	if tr.Len() > 0 {
		lines = append(lines, kv(st, "fraction", st.Sparkline(tr.Fractions(), sparkWidth)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Muted).
		Padding(0, 1)
	return lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render("trajectory"),
		box.Render(strings.Join(lines, "\n")),
	)
}

func kv(st Styles, k, v string) string {
	return st.Muted.Render(fmt.Sprintf("%-18s", k)) + st.Value.Render(v)
}

func metricNames(ms []map[string]float64) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range ms {
		for n := range m {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}
