package tui

import (
	"strconv"
	"strings"

	"github.com/tailplot/tailplot/internal/store"

	"github.com/charmbracelet/lipgloss"
)

const legendWidth = 26

// renderLegend renders the series legend as a bordered column: one line per
// series with its color marker, name, and latest value.
func renderLegend(snap store.Snapshot, legend legendState, height int) string {
	lines := make([]string, 0, len(snap.Series))
	for _, sv := range snap.Series {
		lines = append(lines, legendLine(sv, legend))
	}
	if len(lines) == 0 {
		lines = append(lines, helpStyle.Render("no series"))
	}

	style := legendStyle
	if legend.focused {
		style = legendFocusedStyle
	}
	inner := legendWidth - 4 // border + padding
	return style.Width(legendWidth - 2).Height(height - 2).
		Render(lipgloss.NewStyle().MaxWidth(inner).Render(strings.Join(lines, "\n")))
}

func legendLine(sv store.SeriesView, legend legendState) string {
	cursor := "  "
	if legend.focused && sv.Name == legend.selected {
		cursor = "> "
	}

	marker := lipgloss.NewStyle().Foreground(sv.Color).Render("●")

	var value string
	if n := len(sv.Points); n > 0 {
		value = strconv.FormatFloat(sv.Points[n-1].Value, 'g', 4, 64)
	} else {
		value = "-"
	}

	name := sv.Name
	if sv.Hidden {
		name = helpStyle.Render(name + " (hidden)")
	}

	return cursor + marker + " " + name + " " + value
}
