package tui

import (
	"time"

	"github.com/tailplot/tailplot/internal/feed"
	"github.com/tailplot/tailplot/internal/model"
	"github.com/tailplot/tailplot/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// minSpan is the smallest window the user can zoom into.
const minSpan = time.Second

// windowState holds the visible time window: a span plus an offset measured
// backwards from the newest data. Offset zero means the window follows the
// live right edge.
type windowState struct {
	Span   time.Duration
	Offset time.Duration
	Frozen bool
}

// legendState holds legend focus and series selection.
type legendState struct {
	focused  bool
	selected string // series name; survives new series arriving
}

// Config carries the tunables the chart model needs from the config layer.
type Config struct {
	FrameInterval      time.Duration
	ViewSpan           time.Duration
	WarningDisplay     time.Duration
	ReverseScrollWheel bool
}

// ChartModel is the program's root Bubble Tea model: one scrolling chart,
// a legend, and a transient warning line, fed by store snapshots.
type ChartModel struct {
	store    *store.Store
	warnings *feed.WarningSink
	keys     KeyMap

	width  int
	height int

	window      windowState
	defaultSpan time.Duration
	legend      legendState

	modalStack []Modal

	// Latest snapshot and refresh throttling. A snapshot is only retaken
	// when refreshMin has elapsed since the last one; the frame tick
	// guarantees an eventual refresh.
	snap        store.Snapshot
	lastRefresh time.Time

	frameInterval time.Duration
	refreshMin    time.Duration

	// Most recent warning for the transient status display.
	lastWarn    model.Warning
	lastWarnAt  time.Time
	warnDisplay time.Duration

	reverseScrollWheel bool
}

// FrameTickMsg drives periodic redraws.
type FrameTickMsg time.Time

// storeChangedMsg reports that new points landed in the store.
type storeChangedMsg struct{}

// warningMsg reports that the warning sink received a new entry.
type warningMsg struct{}

// NewChartModel creates the root model over the given store and warning sink.
func NewChartModel(st *store.Store, warnings *feed.WarningSink, cfg Config) *ChartModel {
	frameInterval := cfg.FrameInterval
	if frameInterval <= 0 {
		frameInterval = model.DefaultFrameInterval
	}
	span := cfg.ViewSpan
	if span <= 0 {
		span = model.DefaultViewSpan
	}
	warnDisplay := cfg.WarningDisplay
	if warnDisplay <= 0 {
		warnDisplay = model.DefaultWarningDisplay
	}

	return &ChartModel{
		store:              st,
		warnings:           warnings,
		keys:               DefaultKeyMap(),
		window:             windowState{Span: span},
		defaultSpan:        span,
		frameInterval:      frameInterval,
		refreshMin:         frameInterval,
		warnDisplay:        warnDisplay,
		reverseScrollWheel: cfg.ReverseScrollWheel,
	}
}

// Init starts the frame ticker and the store/warning subscriptions.
func (m *ChartModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frameTick(), m.waitForChange()}
	if m.warnings != nil {
		cmds = append(cmds, m.waitForWarning())
	}
	return tea.Batch(cmds...)
}

func (m *ChartModel) frameTick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// waitForChange blocks on the store's coalesced change signal.
func (m *ChartModel) waitForChange() tea.Cmd {
	ch := m.store.Watch()
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func (m *ChartModel) waitForWarning() tea.Cmd {
	ch := m.warnings.Watch()
	return func() tea.Msg {
		<-ch
		return warningMsg{}
	}
}

// maybeRefresh retakes a store snapshot unless the view is frozen or the
// previous snapshot is too fresh.
func (m *ChartModel) maybeRefresh(now time.Time) {
	if m.window.Frozen {
		return
	}
	if !m.lastRefresh.IsZero() && now.Sub(m.lastRefresh) < m.refreshMin {
		return
	}
	m.snap = m.store.Snapshot()
	m.lastRefresh = now
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *ChartModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *ChartModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *ChartModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *ChartModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// seriesNames returns the sorted names from the current snapshot.
func (m *ChartModel) seriesNames() []string {
	names := make([]string, 0, len(m.snap.Series))
	for _, sv := range m.snap.Series {
		names = append(names, sv.Name)
	}
	return names
}

// moveSelection moves the legend selection by delta with wraparound.
func (m *ChartModel) moveSelection(delta int) {
	names := m.seriesNames()
	if len(names) == 0 {
		m.legend.selected = ""
		return
	}
	idx := 0
	for i, name := range names {
		if name == m.legend.selected {
			idx = i
			break
		}
	}
	idx = (idx + delta%len(names) + len(names)) % len(names)
	m.legend.selected = names[idx]
}

