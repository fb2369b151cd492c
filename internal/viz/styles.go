package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles derives the panel styles from a theme.
type styles struct {
	canvas    lipgloss.Style
	stats     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	active    lipgloss.Style
	graph     lipgloss.Style
	help      lipgloss.Style
	running   lipgloss.Style
	idle      lipgloss.Style
	diverged  lipgloss.Style
	recording lipgloss.Style
	barHigh   lipgloss.Style
	barMid    lipgloss.Style
	barLow    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:    lipgloss.NewStyle().Padding(1, 2),
		stats:     lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(46),
		header:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		active:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:     lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		running:   lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		idle:      lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		diverged:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		recording: lipgloss.NewStyle().Foreground(t.Error).Bold(true).Blink(true),
		barHigh:   lipgloss.NewStyle().Foreground(t.Success),
		barMid:    lipgloss.NewStyle().Foreground(t.Warning),
		barLow:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// progressBar renders fraction in [0, 1] as a filled bar.
func (s styles) progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return s.barHigh.Render(bar)
	case fraction > 0.4:
		return s.barMid.Render(bar)
	}
	return s.barLow.Render(bar)
}

func (s styles) separator(width int) string {
	mid := width / 2
	return s.help.UnsetMarginTop().UnsetItalic().Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
