package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m *ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case FrameTickMsg:
		m.maybeRefresh(time.Time(msg))
		if modal := m.TopModal(); modal != nil {
			if r, ok := modal.(Refreshable); ok {
				r.Refresh()
			}
		}
		return m, m.frameTick()

	case storeChangedMsg:
		m.maybeRefresh(time.Now())
		return m, m.waitForChange()

	case warningMsg:
		if recent := m.warnings.Recent(1); len(recent) > 0 {
			m.lastWarn = recent[len(recent)-1]
			m.lastWarnAt = time.Now()
		}
		if modal := m.TopModal(); modal != nil {
			if r, ok := modal.(Refreshable); ok {
				r.Refresh()
			}
		}
		return m, m.waitForWarning()
	}

	return m, nil
}

func (m *ChartModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works from every state, modals included.
	if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Modal on stack gets the event next.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles chart-level shortcuts.
// Only reached when no modal is on the stack.
func (m *ChartModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m.reverseScrollWheel))
		return m, nil

	case key.Matches(msg, k.Warnings):
		if m.warnings != nil {
			m.PushModal(NewWarningsModal(m.warnings, m.reverseScrollWheel))
		}
		return m, nil

	case key.Matches(msg, k.Escape):
		m.legend.focused = false
		return m, nil

	case key.Matches(msg, k.ScrollLeft):
		m.scrollBy(m.window.Span / 10)
		return m, nil

	case key.Matches(msg, k.ScrollRight):
		m.scrollBy(-m.window.Span / 10)
		return m, nil

	case key.Matches(msg, k.PageLeft):
		m.scrollBy(m.window.Span / 2)
		return m, nil

	case key.Matches(msg, k.PageRight):
		m.scrollBy(-m.window.Span / 2)
		return m, nil

	case key.Matches(msg, k.ZoomIn):
		m.zoomBy(4, 5)
		return m, nil

	case key.Matches(msg, k.ZoomOut):
		m.zoomBy(5, 4)
		return m, nil

	case key.Matches(msg, k.ResetView):
		m.window = windowState{Span: m.defaultSpan}
		m.maybeRefresh(time.Now())
		return m, nil

	case key.Matches(msg, k.Freeze):
		m.window.Frozen = !m.window.Frozen
		if !m.window.Frozen {
			m.lastRefresh = time.Time{}
			m.maybeRefresh(time.Now())
		}
		return m, nil

	case key.Matches(msg, k.Legend):
		m.legend.focused = !m.legend.focused
		if m.legend.focused && m.legend.selected == "" {
			m.moveSelection(0)
		}
		return m, nil

	case key.Matches(msg, k.Up):
		if m.legend.focused {
			m.moveSelection(-1)
		}
		return m, nil

	case key.Matches(msg, k.Down):
		if m.legend.focused {
			m.moveSelection(1)
		}
		return m, nil

	case key.Matches(msg, k.ToggleSeries):
		if m.legend.focused && m.legend.selected != "" {
			m.store.ToggleHidden(m.legend.selected)
			m.forceRefresh()
		}
		return m, nil

	case key.Matches(msg, k.CycleColor):
		if m.legend.focused && m.legend.selected != "" {
			m.store.CycleColor(m.legend.selected)
			m.forceRefresh()
		}
		return m, nil
	}

	return m, nil
}

func (m *ChartModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	back := m.window.Span / 10
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			m.scrollBy(-back)
		} else {
			m.scrollBy(back)
		}
	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			m.scrollBy(back)
		} else {
			m.scrollBy(-back)
		}
	}
	return m, nil
}

// forceRefresh retakes a snapshot immediately. Used after metadata edits so
// the legend reflects them even while frozen.
func (m *ChartModel) forceRefresh() {
	m.snap = m.store.Snapshot()
	m.lastRefresh = time.Now()
}

// scrollBy moves the window by delta further into the past (positive) or
// toward the live edge (negative), clamped to the data extent.
func (m *ChartModel) scrollBy(delta time.Duration) {
	m.window.Offset += delta
	m.clampWindow()
}

// zoomBy scales the span by num/den, keeping the window's right edge fixed.
func (m *ChartModel) zoomBy(num, den int64) {
	span := time.Duration(int64(m.window.Span) * num / den)
	if span < minSpan {
		span = minSpan
	}
	m.window.Span = span
	m.clampWindow()
}

// clampWindow keeps the offset within the snapshot's data extent.
func (m *ChartModel) clampWindow() {
	if m.window.Offset < 0 {
		m.window.Offset = 0
		return
	}
	oldest, latest, ok := m.snap.Bounds()
	if !ok {
		m.window.Offset = 0
		return
	}
	maxOffset := latest.Sub(oldest) - m.window.Span
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.window.Offset > maxOffset {
		m.window.Offset = maxOffset
	}
}
