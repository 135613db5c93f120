package feed

import "testing"

func TestWarningSinkRingCapAndTotal(t *testing.T) {
	t.Parallel()

	sink := NewWarningSink(3)
	for i := 0; i < 5; i++ {
		sink.Reportf("src", "warning %d", i)
	}

	if got := sink.Total(); got != 5 {
		t.Errorf("Total = %d, want 5", got)
	}

	recent := sink.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("retained %d warnings, want 3", len(recent))
	}
	if recent[0].Message != "warning 2" || recent[2].Message != "warning 4" {
		t.Errorf("ring = %v, want warnings 2..4 oldest first", recent)
	}
}

func TestWarningSinkWatchCoalesces(t *testing.T) {
	t.Parallel()

	sink := NewWarningSink(10)
	sink.Reportf("src", "one")
	sink.Reportf("src", "two")

	select {
	case <-sink.Watch():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-sink.Watch():
		t.Fatal("expected signals to coalesce into one")
	default:
	}
}

func TestWarningSinkRecentLimit(t *testing.T) {
	t.Parallel()

	sink := NewWarningSink(10)
	for i := 0; i < 4; i++ {
		sink.Reportf("src", "w%d", i)
	}

	recent := sink.Recent(2)
	if len(recent) != 2 || recent[1].Message != "w3" {
		t.Errorf("Recent(2) = %v, want the two newest", recent)
	}
}
