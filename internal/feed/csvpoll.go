package feed

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// CSVPollSource re-reads one CSV file, or every file matching a glob
// pattern, on each reload trigger. The header is re-resolved per
// reload: an explicit config header always wins, otherwise it is
// inferred fresh from that reload's first line, so header changes take
// effect only from that reload forward. When the pattern expands to
// several files, the first file yielding a numeric value for a column
// claims that column; later files are ignored for it without error.
// Every value a reload yields is appended as a new point.
type CSVPollSource struct {
	name     string
	ch       chan model.PointEvent
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewCSVPoll verifies the path (or the glob pattern) resolves at
// startup and starts the poll loop.
func NewCSVPoll(ctx context.Context, cfg model.SourceConfig, warn *WarningSink) (*CSVPollSource, error) {
	if hasGlobMeta(cfg.Path) {
		if _, err := filepath.Glob(cfg.Path); err != nil {
			return nil, fmt.Errorf("glob %s: %w", cfg.Path, err)
		}
	} else if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &CSVPollSource{
		name:   cfg.Path,
		ch:     make(chan model.PointEvent, DefaultSourceBuffer),
		cancel: cancel,
	}
	watcher := Watch(ctx, cfg.Path, pollPeriod(cfg), warn)
	go s.run(ctx, cfg, watcher, warn)
	return s, nil
}

func (s *CSVPollSource) run(ctx context.Context, cfg model.SourceConfig, watcher *Watcher, warn *WarningSink) {
	defer close(s.ch)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-watcher.Triggers():
			if !ok {
				return
			}
		}

		events := csvReloadEvents(cfg.Path, cfg.Header, delimiter(cfg), time.Now(), warn)
		for _, ev := range events {
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *CSVPollSource) Events() <-chan model.PointEvent { return s.ch }
func (s *CSVPollSource) Name() string                    { return s.name }

func (s *CSVPollSource) Stop() {
	s.stopOnce.Do(s.cancel)
}

// csvReloadEvents performs one reload cycle: expand the pattern, parse
// each file, and collect point events stamped at the reload time. The
// claimed set enforces the first-match-per-column rule across files.
func csvReloadEvents(pattern string, header []string, delim rune, at time.Time, warn *WarningSink) []model.PointEvent {
	paths := []string{pattern}
	if hasGlobMeta(pattern) {
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			return nil
		}
		paths = matches
	}

	var events []model.PointEvent
	claimed := make(map[string]bool)
	for _, path := range paths {
		events = append(events, csvFileEvents(path, header, delim, at, claimed, warn)...)
	}
	return events
}

// csvFileEvents parses one file of a reload. Malformed content skips
// the file for this cycle only.
func csvFileEvents(path string, header []string, delim rune, at time.Time, claimed map[string]bool, warn *WarningSink) []model.PointEvent {
	data, err := os.ReadFile(path)
	if err != nil {
		// A deleted file produces no reload until it reappears.
		if !os.IsNotExist(err) {
			warn.Reportf(path, "reload: %v", err)
		}
		return nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		warn.Reportf(path, "skipping reload: %v", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	rows := records
	if len(header) == 0 {
		header = records[0]
		rows = records[1:]
	}

	// Collect values per column in row order, then emit only columns
	// not already claimed by an earlier file in this reload.
	values := make(map[string][]float64, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			if v, ok := parseFinite(cell); ok {
				values[header[i]] = append(values[header[i]], v)
			}
		}
	}

	var events []model.PointEvent
	for _, name := range header {
		vs := values[name]
		if len(vs) == 0 || claimed[name] {
			continue
		}
		claimed[name] = true
		for _, v := range vs {
			events = append(events, model.PointEvent{Series: name, Value: v, Time: at})
		}
	}
	return events
}
