package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// JSONStreamSource reads a JSON Lines stream: each line is one JSON
// object, and every top-level field holding a scalar number becomes a
// point event named by that field. Other field types are ignored;
// lines that fail to parse are skipped with a warning. The source is
// assumed to be a live, possibly noisy, tail.
type JSONStreamSource struct {
	name     string
	ch       chan model.PointEvent
	cancel   context.CancelFunc
	file     *os.File
	stopOnce sync.Once
}

// NewJSONStream opens cfg.Path and starts reading it line by line in a
// background goroutine. A missing file is a startup error.
func NewJSONStream(ctx context.Context, cfg model.SourceConfig, warn *WarningSink) (*JSONStreamSource, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &JSONStreamSource{
		name:   cfg.Path,
		ch:     make(chan model.PointEvent, DefaultSourceBuffer),
		cancel: cancel,
		file:   f,
	}
	go s.read(ctx, warn)
	return s, nil
}

func (s *JSONStreamSource) read(ctx context.Context, warn *WarningSink) {
	defer close(s.ch)
	defer s.file.Close()

	scanner := bufio.NewScanner(s.file)
	buf := make([]byte, model.DefaultMaxLineSize)
	scanner.Buffer(buf, model.DefaultMaxLineSize)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		events, err := jsonPointEvents(line, time.Now())
		if err != nil {
			warn.Reportf(s.name, "skipping line: %v", err)
			continue
		}
		for _, ev := range events {
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		warn.Reportf(s.name, "read: %v", err)
	}
}

func (s *JSONStreamSource) Events() <-chan model.PointEvent { return s.ch }
func (s *JSONStreamSource) Name() string                    { return s.name }

// Stop cancels the reader and closes the file, unblocking a pending read.
func (s *JSONStreamSource) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		_ = s.file.Close()
	})
}

// jsonPointEvents decodes one JSON object and extracts its scalar
// numeric top-level fields as point events, in sorted field order.
func jsonPointEvents(data []byte, at time.Time) ([]model.PointEvent, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(obj))
	for name, value := range obj {
		if _, ok := value.(float64); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	events := make([]model.PointEvent, 0, len(names))
	for _, name := range names {
		events = append(events, model.PointEvent{
			Series: name,
			Value:  obj[name].(float64),
			Time:   at,
		})
	}
	return events, nil
}
