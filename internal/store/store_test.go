package store

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAppendCreatesSeriesWithPaletteOrder(t *testing.T) {
	t.Parallel()

	s := New(0)
	now := time.Now()
	s.Append("zeta", now, 1)
	s.Append("alpha", now, 2)

	snap := s.Snapshot()
	if len(snap.Series) != 2 {
		t.Fatalf("series count = %d, want 2", len(snap.Series))
	}
	// Snapshot is name-ordered, colors follow creation order.
	if snap.Series[0].Name != "alpha" || snap.Series[1].Name != "zeta" {
		t.Fatalf("snapshot order = %s,%s; want alpha,zeta", snap.Series[0].Name, snap.Series[1].Name)
	}
	if snap.Series[1].Color != Palette[0] {
		t.Errorf("first-created series color = %v, want %v", snap.Series[1].Color, Palette[0])
	}
	if snap.Series[0].Color != Palette[1] {
		t.Errorf("second-created series color = %v, want %v", snap.Series[0].Color, Palette[1])
	}
}

func TestAppendAssignsIncreasingSequence(t *testing.T) {
	t.Parallel()

	s := New(0)
	now := time.Now()
	for i := 0; i < 10; i++ {
		s.Append(fmt.Sprintf("s%d", i%3), now, float64(i))
	}

	// Sequence numbers are global: collected across all series they must
	// form exactly 0..9 with no gaps or repeats.
	seen := make(map[uint64]bool)
	for _, sv := range s.Snapshot().Series {
		for i, p := range sv.Points {
			if i > 0 && p.Seq <= sv.Points[i-1].Seq {
				t.Fatalf("series %s seq %d not greater than previous %d", sv.Name, p.Seq, sv.Points[i-1].Seq)
			}
			seen[p.Seq] = true
		}
	}
	for seq := uint64(0); seq < 10; seq++ {
		if !seen[seq] {
			t.Errorf("sequence %d never assigned", seq)
		}
	}
}

func TestSnapshotIsFrozenPrefix(t *testing.T) {
	t.Parallel()

	s := New(0)
	now := time.Now()
	s.Append("a", now, 1)
	s.Append("a", now, 2)

	snap := s.Snapshot()
	sv, _ := snap.Lookup("a")
	if len(sv.Points) != 2 {
		t.Fatalf("snapshot points = %d, want 2", len(sv.Points))
	}

	s.Append("a", now, 3)
	if len(sv.Points) != 2 {
		t.Errorf("snapshot grew to %d points after a later append", len(sv.Points))
	}
	if sv.Points[0].Value != 1 || sv.Points[1].Value != 2 {
		t.Errorf("snapshot values mutated: %v", sv.Points)
	}
}

func TestSnapshotWhileAppendingConcurrently(t *testing.T) {
	t.Parallel()

	s := New(0)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			s.Append("hot", time.Now(), float64(i))
		}
	}()

	for i := 0; i < 200; i++ {
		snap := s.Snapshot()
		if sv, ok := snap.Lookup("hot"); ok {
			for j, p := range sv.Points {
				if p.Value != float64(j) {
					t.Fatalf("torn read: point %d has value %v", j, p.Value)
				}
			}
		}
	}
	wg.Wait()
}

func TestHiddenSeriesKeepsAccumulating(t *testing.T) {
	t.Parallel()

	s := New(0)
	now := time.Now()
	s.Append("a", now, 1)

	if hidden := s.ToggleHidden("a"); !hidden {
		t.Fatal("ToggleHidden = false, want true")
	}
	s.Append("a", now, 2)
	s.Append("a", now, 3)

	sv, _ := s.Snapshot().Lookup("a")
	if !sv.Hidden {
		t.Error("series should be hidden")
	}
	if len(sv.Points) != 3 {
		t.Errorf("hidden series has %d points, want 3 (ingestion never stops)", len(sv.Points))
	}

	// Re-showing reveals the full accumulated history.
	if hidden := s.ToggleHidden("a"); hidden {
		t.Fatal("ToggleHidden = true, want false")
	}
	sv, _ = s.Snapshot().Lookup("a")
	if sv.Hidden || len(sv.Points) != 3 {
		t.Errorf("re-shown series: hidden=%v points=%d, want visible with 3", sv.Hidden, len(sv.Points))
	}
}

func TestMetadataOpsOnUnknownSeriesAreNoOps(t *testing.T) {
	t.Parallel()

	s := New(0)
	s.SetHidden("ghost", true)
	s.CycleColor("ghost")
	if got := s.ToggleHidden("ghost"); got {
		t.Error("ToggleHidden on unknown series = true, want false")
	}
	if len(s.Snapshot().Series) != 0 {
		t.Error("metadata ops must not create series")
	}
}

func TestCycleColorAdvancesPalette(t *testing.T) {
	t.Parallel()

	s := New(0)
	s.Append("a", time.Now(), 1)
	s.CycleColor("a")

	sv, _ := s.Snapshot().Lookup("a")
	if sv.Color != Palette[1] {
		t.Errorf("color after cycle = %v, want %v", sv.Color, Palette[1])
	}

	for i := 0; i < len(Palette)-1; i++ {
		s.CycleColor("a")
	}
	sv, _ = s.Snapshot().Lookup("a")
	if sv.Color != Palette[0] {
		t.Errorf("color after full cycle = %v, want wrap to %v", sv.Color, Palette[0])
	}
}

func TestColorPersistsAcrossAppends(t *testing.T) {
	t.Parallel()

	s := New(0)
	s.Append("a", time.Now(), 1)
	s.CycleColor("a")
	want, _ := s.Snapshot().Lookup("a")

	// Growth (for example from a poll reload) must not reset metadata.
	for i := 0; i < 10; i++ {
		s.Append("a", time.Now(), float64(i))
	}
	got, _ := s.Snapshot().Lookup("a")
	if got.Color != want.Color {
		t.Errorf("color changed from %v to %v across appends", want.Color, got.Color)
	}
}

func TestBacklogPrunesOldPoints(t *testing.T) {
	t.Parallel()

	s := New(time.Minute)
	base := time.Now()
	s.Append("a", base.Add(-3*time.Minute), 1)
	s.Append("a", base.Add(-2*time.Minute), 2)
	s.Append("a", base, 3)

	sv, _ := s.Snapshot().Lookup("a")
	if len(sv.Points) != 1 || sv.Points[0].Value != 3 {
		t.Errorf("points after prune = %v, want only the newest", sv.Points)
	}
}

func TestWatchCoalescesAppends(t *testing.T) {
	t.Parallel()

	s := New(0)
	for i := 0; i < 5; i++ {
		s.Append("a", time.Now(), float64(i))
	}

	select {
	case <-s.Watch():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-s.Watch():
		t.Fatal("expected change signals to coalesce")
	default:
	}
}

func TestBoundsSkipsHiddenSeries(t *testing.T) {
	t.Parallel()

	s := New(0)
	early := time.Now().Add(-time.Hour)
	late := time.Now()
	s.Append("old", early, 1)
	s.Append("new", late, 2)
	s.SetHidden("old", true)

	oldest, latest, ok := s.Snapshot().Bounds()
	if !ok {
		t.Fatal("Bounds ok = false, want true")
	}
	if !oldest.Equal(late) || !latest.Equal(late) {
		t.Errorf("Bounds = [%v, %v], want the visible series only", oldest, latest)
	}

	s.SetHidden("new", true)
	if _, _, ok := s.Snapshot().Bounds(); ok {
		t.Error("Bounds ok = true with everything hidden, want false")
	}
}
