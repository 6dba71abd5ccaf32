package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the text styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Subtle:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Success: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// KV renders "label: value" with the label right-aligned to width.
func (s Styles) KV(label string, value any, width int) string {
	return s.Label.Render(fmt.Sprintf("%*s:", width, label)) + " " + s.Value.Render(fmt.Sprint(value))
}

// GradientText colors each rune of text along a Lab blend of two colors.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	c0, err0 := colorful.Hex(string(start))
	c1, err1 := colorful.Hex(string(end))
	if err0 != nil || err1 != nil {
		return text
	}

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := c0.BlendLab(c1, t).Clamped()
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return sb.String()
}

// Swatch renders a block of width cells in the given hex color.
func Swatch(hex string, width int) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func Spinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// ProgressBar renders fraction in [0, 1] as a bar of width cells.
func ProgressBar(fraction float64, width int, t Theme) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction > 0.8:
		return lipgloss.NewStyle().Foreground(t.Success).Render(bar)
	case fraction > 0.4:
		return lipgloss.NewStyle().Foreground(t.Warning).Render(bar)
	default:
		return lipgloss.NewStyle().Foreground(t.Primary).Render(bar)
	}
}

// Sparkline renders values as block characters, sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(0, width))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(1, len(values)/width)
	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / span * float64(len(chars)-1))
		sb.WriteRune(chars[max(0, min(len(chars)-1, idx))])
	}
	return sb.String()
}

// Separator draws a muted rule with a centered diamond.
func Separator(width int, t Theme) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return lipgloss.NewStyle().Foreground(t.Muted).Render(left + " ◆ " + right)
}
