package model

import (
	"fmt"
	"time"
)

// SourceKind identifies the input format and delivery mode of a feed.
type SourceKind int

const (
	JSONStream SourceKind = iota // JSON Lines, read continuously
	JSONPoll                     // one JSON object, re-read on reload
	CSVStream                    // CSV with header, read continuously
	CSVPoll                      // CSV (or glob of CSVs), re-read on reload
)

func (k SourceKind) String() string {
	switch k {
	case JSONStream:
		return "json-stream"
	case JSONPoll:
		return "json-poll"
	case CSVStream:
		return "csv-stream"
	case CSVPoll:
		return "csv-poll"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseSourceKind converts the config/flag spelling of a kind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "json-stream", "json":
		return JSONStream, nil
	case "json-poll":
		return JSONPoll, nil
	case "csv-stream", "csv":
		return CSVStream, nil
	case "csv-poll":
		return CSVPoll, nil
	default:
		return 0, fmt.Errorf("unknown source kind %q", s)
	}
}

// SourceConfig describes one configured input feed. Immutable once the
// run starts; for CSVPoll the path may be a glob pattern.
type SourceConfig struct {
	Kind       SourceKind
	Path       string
	Header     []string      // explicit CSV header; nil = infer from first line
	Delimiter  rune          // CSV field delimiter; 0 = ','
	PollPeriod time.Duration // poll kinds only; 0 = DefaultPollPeriod
}

// PointEvent is one normalized datum emitted by a source adapter.
// Events are ephemeral: the hub folds them into the store and discards them.
type PointEvent struct {
	Series string
	Value  float64
	Time   time.Time
}

// Point is one stored datum. Seq is the store-assigned arrival order,
// strictly increasing across all series.
type Point struct {
	Time  time.Time
	Seq   uint64
	Value float64
}

// Warning is a recoverable ingestion anomaly surfaced to the user
// instead of being logged or treated as fatal.
type Warning struct {
	Time    time.Time
	Source  string
	Message string
}
