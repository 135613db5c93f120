package tui

import (
	"testing"
	"time"

	"github.com/tailplot/tailplot/internal/feed"
	"github.com/tailplot/tailplot/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func pressRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) (*ChartModel, *store.Store) {
	t.Helper()
	st := store.New(0)
	m := NewChartModel(st, feed.NewWarningSink(16), Config{
		ViewSpan: 10 * time.Second,
	})
	m.width = 120
	m.height = 40
	return m, st
}

// seed fills the store with one point per second over the given span and
// takes a fresh snapshot.
func seed(m *ChartModel, st *store.Store, name string, span time.Duration) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for d := time.Duration(0); d <= span; d += time.Second {
		st.Append(name, base.Add(d), float64(d/time.Second))
	}
	m.forceRefresh()
}

func assertQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

// ChartModel is the program root, so it must satisfy tea.Model itself.
var _ tea.Model = (*ChartModel)(nil)

func TestWindowSizeResizesModel(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", 5*time.Second)

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil {
		t.Errorf("resize produced a command, want none")
	}
	resized, ok := next.(*ChartModel)
	if !ok {
		t.Fatalf("Update returned %T, want *ChartModel", next)
	}
	if resized.width != 80 || resized.height != 24 {
		t.Errorf("size = %dx%d, want 80x24", resized.width, resized.height)
	}
	if resized.View() == "" {
		t.Error("View() empty after resize with seeded data")
	}
}

func TestQuitFromNormalState(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	_, cmd := m.Update(pressRune('q'))
	assertQuit(t, cmd)
}

func TestQuitFromHelpModal(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.Update(pressRune('?'))
	if !m.HasModal() {
		t.Fatal("help modal not pushed")
	}
	_, cmd := m.Update(pressRune('q'))
	assertQuit(t, cmd)
}

func TestCtrlCQuits(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assertQuit(t, cmd)
}

func TestHelpToggles(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.Update(pressRune('?'))
	if top := m.TopModal(); top == nil || top.ID() != "help" {
		t.Fatal("expected help modal on top")
	}
	m.Update(pressRune('?'))
	if m.HasModal() {
		t.Fatal("second ? should close help")
	}
}

func TestEscapeClosesModal(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.Update(pressRune('w'))
	if top := m.TopModal(); top == nil || top.ID() != "warnings" {
		t.Fatal("expected warnings modal on top")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.HasModal() {
		t.Fatal("esc should close the modal")
	}
}

func TestScrollClampsToDataBounds(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", time.Minute) // extent 60s, span 10s

	for i := 0; i < 200; i++ {
		m.Update(pressRune('h'))
	}
	if want := 50 * time.Second; m.window.Offset != want {
		t.Errorf("offset after scrolling far back = %v, want clamp at %v", m.window.Offset, want)
	}

	for i := 0; i < 200; i++ {
		m.Update(pressRune('l'))
	}
	if m.window.Offset != 0 {
		t.Errorf("offset after scrolling far forward = %v, want 0", m.window.Offset)
	}
}

func TestScrollWithNoDataStaysAtLiveEdge(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	for i := 0; i < 10; i++ {
		m.Update(pressRune('h'))
	}
	if m.window.Offset != 0 {
		t.Errorf("offset = %v, want 0 with an empty store", m.window.Offset)
	}
}

func TestPageScrollsByHalfWindow(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", time.Minute)

	m.Update(pressRune('H'))
	if want := 5 * time.Second; m.window.Offset != want {
		t.Errorf("offset after H = %v, want %v", m.window.Offset, want)
	}
	m.Update(pressRune('L'))
	if m.window.Offset != 0 {
		t.Errorf("offset after L = %v, want 0", m.window.Offset)
	}
}

func TestZoomInStopsAtMinimumSpan(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", time.Minute)

	for i := 0; i < 100; i++ {
		m.Update(pressRune('='))
	}
	if m.window.Span != minSpan {
		t.Errorf("span = %v, want minimum %v", m.window.Span, minSpan)
	}
}

func TestZoomOutGrowsSpan(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", time.Minute)

	before := m.window.Span
	m.Update(pressRune('-'))
	if m.window.Span <= before {
		t.Errorf("span = %v, want larger than %v", m.window.Span, before)
	}
}

func TestResetViewRestoresDefaults(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", time.Minute)

	m.Update(pressRune('h'))
	m.Update(pressRune('-'))
	m.Update(pressRune(' '))
	m.Update(pressRune('r'))

	if m.window.Span != m.defaultSpan || m.window.Offset != 0 || m.window.Frozen {
		t.Errorf("window after reset = %+v, want default span, zero offset, unfrozen", m.window)
	}
}

func TestFreezePinsSnapshot(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	seed(m, st, "a", time.Minute)
	frozen := len(mustLookup(t, m, "a").Points)

	m.Update(pressRune(' '))
	if !m.window.Frozen {
		t.Fatal("space should freeze the view")
	}

	st.Append("a", time.Now(), 1)
	m.Update(FrameTickMsg(time.Now()))
	if got := len(mustLookup(t, m, "a").Points); got != frozen {
		t.Errorf("snapshot grew to %d points while frozen, want %d", got, frozen)
	}

	m.Update(pressRune(' '))
	if got := len(mustLookup(t, m, "a").Points); got != frozen+1 {
		t.Errorf("snapshot after resume has %d points, want %d", got, frozen+1)
	}
}

func mustLookup(t *testing.T, m *ChartModel, name string) store.SeriesView {
	t.Helper()
	sv, ok := m.snap.Lookup(name)
	if !ok {
		t.Fatalf("series %q missing from snapshot", name)
	}
	return sv
}

func TestLegendSelectionWraps(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	now := time.Now()
	st.Append("a", now, 1)
	st.Append("b", now, 2)
	st.Append("c", now, 3)
	m.forceRefresh()

	m.Update(pressRune('g'))
	if !m.legend.focused || m.legend.selected != "a" {
		t.Fatalf("legend after g: focused=%v selected=%q, want focused on a", m.legend.focused, m.legend.selected)
	}

	m.Update(pressRune('j'))
	m.Update(pressRune('j'))
	m.Update(pressRune('j'))
	if m.legend.selected != "a" {
		t.Errorf("selection after wrapping down = %q, want a", m.legend.selected)
	}
	m.Update(pressRune('k'))
	if m.legend.selected != "c" {
		t.Errorf("selection after wrapping up = %q, want c", m.legend.selected)
	}
}

func TestToggleSeriesHidesAndKeepsHistory(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	now := time.Now()
	st.Append("a", now, 1)
	m.forceRefresh()

	m.Update(pressRune('g'))
	m.Update(pressRune('v'))
	if !mustLookup(t, m, "a").Hidden {
		t.Fatal("v should hide the selected series")
	}

	st.Append("a", now.Add(time.Second), 2)
	m.Update(pressRune('v'))
	sv := mustLookup(t, m, "a")
	if sv.Hidden {
		t.Fatal("second v should re-show the series")
	}
	if len(sv.Points) != 2 {
		t.Errorf("points after re-show = %d, want full history of 2", len(sv.Points))
	}
}

func TestCycleColorRequiresLegendFocus(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t)
	st.Append("a", time.Now(), 1)
	m.forceRefresh()
	before := mustLookup(t, m, "a").Color

	m.Update(pressRune('c')) // legend not focused
	if got := mustLookup(t, m, "a").Color; got != before {
		t.Fatal("c without legend focus should be a no-op")
	}

	m.Update(pressRune('g'))
	m.Update(pressRune('c'))
	if got := mustLookup(t, m, "a").Color; got == before {
		t.Error("c with legend focus should change the color")
	}
}

func TestWarningMsgRecordsLatest(t *testing.T) {
	t.Parallel()

	st := store.New(0)
	sink := feed.NewWarningSink(16)
	m := NewChartModel(st, sink, Config{})

	sink.Reportf("cpu.json", "bad line")
	m.Update(warningMsg{})

	if m.lastWarn.Source != "cpu.json" || m.lastWarnAt.IsZero() {
		t.Errorf("lastWarn = %+v, want the reported warning recorded", m.lastWarn)
	}
}
