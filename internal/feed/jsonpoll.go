package feed

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// JSONPollSource re-reads a whole JSON file on every reload trigger and
// emits one point event per scalar-numeric top-level field, all stamped
// at the reload time. Malformed content skips that cycle only; the next
// trigger retries.
type JSONPollSource struct {
	name     string
	ch       chan model.PointEvent
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewJSONPoll verifies the file exists and starts the poll loop driven
// by a Watcher on cfg.Path.
func NewJSONPoll(ctx context.Context, cfg model.SourceConfig, warn *WarningSink) (*JSONPollSource, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", cfg.Path, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &JSONPollSource{
		name:   cfg.Path,
		ch:     make(chan model.PointEvent, DefaultSourceBuffer),
		cancel: cancel,
	}
	watcher := Watch(ctx, cfg.Path, pollPeriod(cfg), warn)
	go s.run(ctx, cfg.Path, watcher, warn)
	return s, nil
}

func (s *JSONPollSource) run(ctx context.Context, path string, watcher *Watcher, warn *WarningSink) {
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

		at := time.Now()
		data, err := os.ReadFile(path)
		if err != nil {
			// A deleted file simply produces no reload until it reappears.
			if !os.IsNotExist(err) {
				warn.Reportf(s.name, "reload: %v", err)
			}
			continue
		}
		events, err := jsonPointEvents(data, at)
		if err != nil {
			warn.Reportf(s.name, "skipping reload: %v", err)
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
}

func (s *JSONPollSource) Events() <-chan model.PointEvent { return s.ch }
func (s *JSONPollSource) Name() string                    { return s.name }

func (s *JSONPollSource) Stop() {
	s.stopOnce.Do(s.cancel)
}
