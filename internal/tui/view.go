package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the chart page.
func (m *ChartModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}

	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	// One line each for the transient warning and the status bar; the rest
	// is chart plus legend. The warning line is always reserved so the
	// chart does not jump when a warning appears.
	bodyHeight := m.height - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	if m.width >= 2*legendWidth {
		chart := renderChart(m.window, m.snap, m.width-legendWidth, bodyHeight)
		legend := renderLegend(m.snap, m.legend, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, chart, legend)
	} else {
		body = renderChart(m.window, m.snap, m.width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderWarningLine(), m.renderStatusLine())
}

// renderWarningLine shows the most recent feed warning for a short while.
func (m *ChartModel) renderWarningLine() string {
	if m.lastWarnAt.IsZero() || time.Since(m.lastWarnAt) >= m.warnDisplay {
		return ""
	}
	line := fmt.Sprintf("%s: %s", m.lastWarn.Source, m.lastWarn.Message)
	return warningStyle.MaxWidth(m.width).Render(line)
}

// renderStatusLine renders the bottom bar with window info and key hints.
func (m *ChartModel) renderStatusLine() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("window %s", formatSpan(m.window.Span)))
	if m.window.Offset > 0 {
		parts = append(parts, fmt.Sprintf("-%s", formatSpan(m.window.Offset)))
	}
	if m.warnings != nil {
		if total := m.warnings.Total(); total > 0 {
			parts = append(parts, fmt.Sprintf("%d warnings (w)", total))
		}
	}
	parts = append(parts, "q quit", "? help")

	line := " " + strings.Join(parts, " │ ")
	status := statusStyle.Width(m.width).MaxWidth(m.width).Render(line)
	if m.window.Frozen {
		badge := frozenStyle.Render(" FROZEN ")
		status = lipgloss.JoinHorizontal(lipgloss.Top, badge,
			statusStyle.Width(m.width-lipgloss.Width(badge)).MaxWidth(m.width).Render(line))
	}
	return status
}

// formatSpan trims a duration for the status bar: "1m30s" not "1m30.000s".
func formatSpan(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
