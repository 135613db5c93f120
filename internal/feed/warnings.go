package feed

import (
	"fmt"
	"sync"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// WarningSink collects recoverable ingestion anomalies in a bounded
// in-memory ring. Adapters report into it; the TUI reads it. Reporting
// never blocks and never fails.
type WarningSink struct {
	mu      sync.Mutex
	cap     int
	ring    []model.Warning
	total   uint64
	changed chan struct{}
}

// NewWarningSink creates a sink keeping at most capacity warnings.
func NewWarningSink(capacity int) *WarningSink {
	if capacity <= 0 {
		capacity = model.DefaultWarningBacklog
	}
	return &WarningSink{
		cap:     capacity,
		changed: make(chan struct{}, 1),
	}
}

// Reportf records one warning attributed to source.
func (s *WarningSink) Reportf(source, format string, args ...any) {
	w := model.Warning{
		Time:    time.Now(),
		Source:  source,
		Message: fmt.Sprintf(format, args...),
	}

	s.mu.Lock()
	if len(s.ring) >= s.cap {
		s.ring = s.ring[1:]
	}
	s.ring = append(s.ring, w)
	s.total++
	s.mu.Unlock()

	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Recent returns a copy of the most recent n warnings, oldest first.
// n <= 0 returns everything retained.
func (s *WarningSink) Recent(n int) []model.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.ring) {
		n = len(s.ring)
	}
	out := make([]model.Warning, n)
	copy(out, s.ring[len(s.ring)-n:])
	return out
}

// Total returns the number of warnings ever reported, including ones
// that have rotated out of the ring.
func (s *WarningSink) Total() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Watch returns a coalesced change signal: at most one pending
// notification regardless of how many warnings arrived.
func (s *WarningSink) Watch() <-chan struct{} {
	return s.changed
}
