package tui

import (
	"sort"
	"time"

	"github.com/tailplot/tailplot/internal/model"
	"github.com/tailplot/tailplot/internal/store"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// visibleWindow resolves the window state against the snapshot's data extent.
// The window is anchored to the newest visible point minus the offset; ok is
// false when the snapshot holds no visible data.
func visibleWindow(w windowState, snap store.Snapshot) (start, end time.Time, ok bool) {
	_, latest, ok := snap.Bounds()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end = latest.Add(-w.Offset)
	return end.Add(-w.Span), end, true
}

// pointsInWindow returns the sub-slice of pts with Time in [start, end].
// Points within one series are time-ordered, so both cuts binary-search.
func pointsInWindow(pts []model.Point, start, end time.Time) []model.Point {
	lo := sort.Search(len(pts), func(i int) bool {
		return !pts[i].Time.Before(start)
	})
	hi := sort.Search(len(pts), func(i int) bool {
		return pts[i].Time.After(end)
	})
	if lo >= hi {
		return nil
	}
	return pts[lo:hi]
}

// renderChart draws the visible window of every non-hidden series as a braille
// line chart. It builds a fresh chart each frame from the snapshot, so there
// is no chart state to keep in sync with the store.
func renderChart(w windowState, snap store.Snapshot, width, height int) string {
	if width < 8 || height < 3 {
		return ""
	}

	start, end, ok := visibleWindow(w, snap)
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			helpStyle.Render("waiting for data"))
	}

	chart := timeserieslinechart.New(width, height)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)

	plotted := false
	for _, sv := range snap.Series {
		if sv.Hidden {
			continue
		}
		pts := Downsample(pointsInWindow(sv.Points, start, end), width)
		if len(pts) == 0 {
			continue
		}
		plotted = true
		chart.SetDataSetStyle(sv.Name, lipgloss.NewStyle().Foreground(sv.Color))
		for _, p := range pts {
			chart.PushDataSet(sv.Name, timeserieslinechart.TimePoint{
				Time:  p.Time,
				Value: p.Value,
			})
		}
	}

	if !plotted {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			helpStyle.Render("no visible series in window"))
	}

	chart.DrawBrailleAll()
	return chart.View()
}
