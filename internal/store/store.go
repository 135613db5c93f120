// Package store holds the in-memory time series data for one run.
//
// The store is the single shared mutable resource of the system: the
// ingestion hub is its only writer and the TUI reads it exclusively
// through Snapshot, which returns frozen point-slice prefixes. Because
// points are only ever appended, a snapshot taken under the read lock
// can never observe a torn write, and later appends either land past
// the snapshot's length or in a reallocated backing array.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tailplot/tailplot/internal/model"
)

type series struct {
	points   []model.Point
	colorIdx int
	hidden   bool
}

// Store owns all series and their display metadata. Metadata is keyed
// by series name, never by position, so reloads that reorder columns
// never reshuffle a user's customizations; it is never reset while the
// run lasts.
type Store struct {
	mu      sync.RWMutex
	series  map[string]*series
	created int
	nextSeq uint64
	backlog time.Duration
	changed chan struct{}
}

// New creates an empty store. backlog > 0 prunes points older than
// that duration (relative to each series' newest point) on append;
// 0 keeps every point for the run's lifetime.
func New(backlog time.Duration) *Store {
	return &Store{
		series:  make(map[string]*series),
		backlog: backlog,
		changed: make(chan struct{}, 1),
	}
}

// Append adds one point to the named series, creating the series on
// first use with the next palette color. Each point gets the next
// arrival sequence, strictly increasing across all series.
func (s *Store) Append(name string, t time.Time, v float64) {
	s.mu.Lock()
	sr, ok := s.series[name]
	if !ok {
		sr = &series{colorIdx: s.created % len(Palette)}
		s.series[name] = sr
		s.created++
	}
	seq := s.nextSeq
	s.nextSeq++
	sr.points = append(sr.points, model.Point{Time: t, Seq: seq, Value: v})

	if s.backlog > 0 {
		cutoff := t.Add(-s.backlog)
		drop := 0
		for drop < len(sr.points)-1 && sr.points[drop].Time.Before(cutoff) {
			drop++
		}
		if drop > 0 {
			sr.points = sr.points[drop:]
		}
	}
	s.mu.Unlock()

	s.notify()
}

// SeriesView is one series in a snapshot. Points is a frozen prefix
// shared with the store; callers must treat it as read-only.
type SeriesView struct {
	Name   string
	Points []model.Point
	Color  lipgloss.Color
	Hidden bool
}

// Snapshot is a consistent read-only view of the whole store, ordered
// by series name for stable display. Safe to retain while appends
// continue.
type Snapshot struct {
	Series []SeriesView
	Taken  time.Time
}

// Snapshot freezes the current state of every series.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series))
	for name := range s.series {
		names = append(names, name)
	}
	sort.Strings(names)

	snap := Snapshot{
		Series: make([]SeriesView, 0, len(names)),
		Taken:  time.Now(),
	}
	for _, name := range names {
		sr := s.series[name]
		n := len(sr.points)
		snap.Series = append(snap.Series, SeriesView{
			Name:   name,
			Points: sr.points[:n:n],
			Color:  Palette[sr.colorIdx%len(Palette)],
			Hidden: sr.hidden,
		})
	}
	return snap
}

// SetHidden flips the visibility flag. Unknown names are no-ops, never
// errors. Hiding never stops the series from accumulating points.
func (s *Store) SetHidden(name string, hidden bool) {
	s.mu.Lock()
	if sr, ok := s.series[name]; ok {
		sr.hidden = hidden
	}
	s.mu.Unlock()
	s.notify()
}

// ToggleHidden flips and returns the new hidden state. Unknown names
// are no-ops and report false.
func (s *Store) ToggleHidden(name string) bool {
	s.mu.Lock()
	sr, ok := s.series[name]
	var hidden bool
	if ok {
		sr.hidden = !sr.hidden
		hidden = sr.hidden
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return hidden
}

// CycleColor advances the series to the next palette color.
func (s *Store) CycleColor(name string) {
	s.mu.Lock()
	if sr, ok := s.series[name]; ok {
		sr.colorIdx = (sr.colorIdx + 1) % len(Palette)
	}
	s.mu.Unlock()
	s.notify()
}

// Watch returns a coalesced change signal: at most one pending
// notification however many appends happened since the last receive.
func (s *Store) Watch() <-chan struct{} {
	return s.changed
}

func (s *Store) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Bounds returns the oldest and latest point times across the
// snapshot's non-hidden series; ok is false when no visible point
// exists.
func (sn Snapshot) Bounds() (oldest, latest time.Time, ok bool) {
	for _, sv := range sn.Series {
		if sv.Hidden || len(sv.Points) == 0 {
			continue
		}
		first := sv.Points[0].Time
		last := sv.Points[len(sv.Points)-1].Time
		if !ok {
			oldest, latest, ok = first, last, true
			continue
		}
		if first.Before(oldest) {
			oldest = first
		}
		if last.After(latest) {
			latest = last
		}
	}
	return oldest, latest, ok
}

// Lookup returns the view for one series by name.
func (sn Snapshot) Lookup(name string) (SeriesView, bool) {
	for _, sv := range sn.Series {
		if sv.Name == name {
			return sv, true
		}
	}
	return SeriesView{}, false
}
