package tui

import (
	"fmt"
	"strings"

	"github.com/tailplot/tailplot/internal/feed"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// WarningsModal displays the warning sink's recent entries, newest last.
type WarningsModal struct {
	warnings           *feed.WarningSink
	viewport           viewport.Model
	content            string
	reverseScrollWheel bool
}

func NewWarningsModal(warnings *feed.WarningSink, reverseScrollWheel bool) *WarningsModal {
	m := &WarningsModal{
		warnings:           warnings,
		viewport:           viewport.New(80, 20),
		reverseScrollWheel: reverseScrollWheel,
	}
	m.Refresh()
	return m
}

func (wm *WarningsModal) ID() string { return "warnings" }

// Refresh re-reads the sink. Called while the modal is on top of the stack.
func (wm *WarningsModal) Refresh() {
	recent := wm.warnings.Recent(0)
	if len(recent) == 0 {
		wm.content = "No warnings."
		return
	}

	var b strings.Builder
	if total := wm.warnings.Total(); total > uint64(len(recent)) {
		fmt.Fprintf(&b, "%d older warnings dropped\n\n", total-uint64(len(recent)))
	}
	for _, w := range recent {
		fmt.Fprintf(&b, "%s  %s: %s\n", w.Time.Format("15:04:05"), w.Source, w.Message)
	}
	wm.content = b.String()
}

func (wm *WarningsModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			wm.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			wm.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			wm.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			wm.viewport.HalfPageDown()
			return false, nil
		case "w", "escape", "esc":
			return true, nil
		}
		var cmd tea.Cmd
		wm.viewport, cmd = wm.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				if wm.reverseScrollWheel {
					wm.viewport.ScrollDown(1)
				} else {
					wm.viewport.ScrollUp(1)
				}
			case tea.MouseButtonWheelDown:
				if wm.reverseScrollWheel {
					wm.viewport.ScrollUp(1)
				} else {
					wm.viewport.ScrollDown(1)
				}
			}
		}
		return false, nil
	}
	return false, nil
}

func (wm *WarningsModal) View(width, height int) string {
	return renderModal(&wm.viewport, "Feed Warnings", wm.content, "w/ESC: Close", width, height)
}
