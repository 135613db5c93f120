package feed

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// CSVStreamSource reads a CSV stream line by line. The header comes
// from the explicit config or, failing that, from the first line read.
// Each cell that parses as a finite float emits a point event named by
// its column header; non-numeric cells are ignored per column, never
// fatal to the row.
type CSVStreamSource struct {
	name     string
	ch       chan model.PointEvent
	cancel   context.CancelFunc
	file     *os.File
	header   []string
	delim    rune
	stopOnce sync.Once
}

// NewCSVStream opens cfg.Path and starts the reader goroutine. A
// missing file is a startup error.
func NewCSVStream(ctx context.Context, cfg model.SourceConfig, warn *WarningSink) (*CSVStreamSource, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &CSVStreamSource{
		name:   cfg.Path,
		ch:     make(chan model.PointEvent, DefaultSourceBuffer),
		cancel: cancel,
		file:   f,
		header: cfg.Header,
		delim:  delimiter(cfg),
	}
	go s.read(ctx, warn)
	return s, nil
}

func (s *CSVStreamSource) read(ctx context.Context, warn *WarningSink) {
	defer close(s.ch)
	defer s.file.Close()

	reader := csv.NewReader(bufio.NewReader(s.file))
	reader.Comma = s.delim
	reader.FieldsPerRecord = -1

	if len(s.header) == 0 {
		record, err := reader.Read()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, io.EOF) {
				warn.Reportf(s.name, "read header: %v", err)
			}
			return
		}
		s.header = record
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				warn.Reportf(s.name, "skipping row: %v", err)
				continue
			}
			warn.Reportf(s.name, "read: %v", err)
			return
		}
		at := time.Now()
		for _, ev := range rowEvents(s.header, record, at) {
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *CSVStreamSource) Events() <-chan model.PointEvent { return s.ch }
func (s *CSVStreamSource) Name() string                    { return s.name }

// Stop cancels the reader and closes the file, unblocking a pending read.
func (s *CSVStreamSource) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		_ = s.file.Close()
	})
}

// rowEvents matches a data row against the header and keeps the cells
// that parse as finite floats. Cells past the header are ignored.
func rowEvents(header []string, record []string, at time.Time) []model.PointEvent {
	events := make([]model.PointEvent, 0, len(record))
	for i, cell := range record {
		if i >= len(header) {
			break
		}
		value, ok := parseFinite(cell)
		if !ok {
			continue
		}
		events = append(events, model.PointEvent{
			Series: header[i],
			Value:  value,
			Time:   at,
		})
	}
	return events
}

// parseFinite parses a finite float64; NaN and infinities never reach
// the store.
func parseFinite(cell string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
