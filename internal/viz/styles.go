package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
	Warn   lipgloss.Style

	sparkHigh lipgloss.Style
	sparkMid  lipgloss.Style
	sparkLow  lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Text).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		Value:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Muted:  lipgloss.NewStyle().Foreground(t.Muted),
		Border: lipgloss.NewStyle().Foreground(t.Muted),
		Warn:   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),

		sparkHigh: lipgloss.NewStyle().Foreground(t.Success),
		sparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		sparkLow:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// Sparkline renders a mini chart of values sampled to width characters.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.sparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(s.sparkMid.Render(c))
		default:
			result.WriteString(s.sparkLow.Render(c))
		}
	}

	return result.String()
}

// Separator draws a decorated horizontal rule.
func (s Styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.Muted.Render(left + " ◆ " + right)
}
