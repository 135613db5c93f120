package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal displays the key binding reference.
type HelpModal struct {
	viewport           viewport.Model
	reverseScrollWheel bool
}

func NewHelpModal(reverseScrollWheel bool) *HelpModal {
	return &HelpModal{
		viewport:           viewport.New(80, 20),
		reverseScrollWheel: reverseScrollWheel,
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		case "?", "escape", "esc":
			return true, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				if h.reverseScrollWheel {
					h.viewport.ScrollDown(1)
				} else {
					h.viewport.ScrollUp(1)
				}
			case tea.MouseButtonWheelDown:
				if h.reverseScrollWheel {
					h.viewport.ScrollUp(1)
				} else {
					h.viewport.ScrollDown(1)
				}
			}
		}
		return false, nil
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return renderModal(&h.viewport, "Help", helpContent, "?/ESC: Close", width, height)
}

const helpContent = `Live Chart Help

WINDOW:
  h/l or ←/→     - Scroll backward/forward in time
  H/L            - Scroll by half a window
  - / =          - Zoom out / zoom in
  r              - Reset window to the default span, back to live edge
  Space          - Freeze/resume chart updates (ingestion continues)

LEGEND:
  g              - Focus/unfocus the legend
  up/down or k/j - Select a series (legend focused)
  v              - Show/hide the selected series
  c              - Cycle the selected series' color
  Escape         - Unfocus the legend

OTHER:
  w              - Show recent feed warnings
  ?              - Toggle this help
  q/Ctrl+C       - Quit (works everywhere)

Hidden series keep ingesting; showing one again reveals everything
it collected while hidden.
`

// renderModal draws a bordered, centered modal with a scrollable body.
func renderModal(vp *viewport.Model, title, content, status string, width, height int) string {
	modalWidth := width - 8
	modalHeight := height - 4

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4
	if contentWidth < 10 {
		contentWidth = 10
	}
	if contentHeight < 3 {
		contentHeight = 3
	}

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(lipgloss.NewStyle().Width(contentWidth).Render(content))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render("up/down/Wheel: Scroll | PgUp/PgDn: Page | " + status)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}
