package feed

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// stdinName labels stdin events and warnings.
const stdinName = "stdin"

// JSONStdinSource reads JSON Lines from stdin. Unlike a file stream it
// cannot be closed to unblock a pending read, so the scan runs in its
// own goroutine and cancellation just abandons it; the goroutine exits
// with the process.
type JSONStdinSource struct {
	name     string
	ch       chan model.PointEvent
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewJSONStdin starts reading os.Stdin.
func NewJSONStdin(ctx context.Context, warn *WarningSink) *JSONStdinSource {
	return newJSONReader(ctx, stdinName, os.Stdin, warn)
}

func newJSONReader(ctx context.Context, name string, r io.Reader, warn *WarningSink) *JSONStdinSource {
	ctx, cancel := context.WithCancel(ctx)
	s := &JSONStdinSource{
		name:   name,
		ch:     make(chan model.PointEvent, DefaultSourceBuffer),
		cancel: cancel,
	}
	go s.read(ctx, r, warn)
	return s
}

func (s *JSONStdinSource) read(ctx context.Context, r io.Reader, warn *WarningSink) {
	defer close(s.ch)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, model.DefaultMaxLineSize)
	scanner.Buffer(buf, model.DefaultMaxLineSize)

	type scanResult struct {
		line []byte
	}
	results := make(chan scanResult)
	go func() {
		defer close(results)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			if len(line) == 0 {
				continue
			}
			select {
			case results <- scanResult{line: line}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-results:
			if !ok {
				return
			}
			events, err := jsonPointEvents(res.line, time.Now())
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
	}
}

func (s *JSONStdinSource) Events() <-chan model.PointEvent { return s.ch }
func (s *JSONStdinSource) Name() string                    { return s.name }

func (s *JSONStdinSource) Stop() {
	s.stopOnce.Do(s.cancel)
}
