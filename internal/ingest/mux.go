// Package ingest fans point events from every open feed into the store.
// Events from a single feed keep their feed order; events from different
// feeds interleave in arrival order on the shared channel.
package ingest

import (
	"context"
	"sync"

	"github.com/tailplot/tailplot/internal/feed"
	"github.com/tailplot/tailplot/internal/model"
)

// DefaultMuxBuffer is the default channel buffer size for the multiplexer.
const DefaultMuxBuffer = 50_000

// Mux merges multiple feeds into a single read-only event stream.
type Mux struct {
	ctx    context.Context
	cancel context.CancelFunc

	sources []feed.Source
	events  chan model.PointEvent

	startOnce sync.Once
	stopOnce  sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewMux(parent context.Context, sources []feed.Source, buffer int) *Mux {
	if buffer <= 0 {
		buffer = DefaultMuxBuffer
	}
	ctx, cancel := context.WithCancel(parent)
	return &Mux{
		ctx:     ctx,
		cancel:  cancel,
		sources: sources,
		events:  make(chan model.PointEvent, buffer),
	}
}

func (m *Mux) Start() {
	m.startOnce.Do(func() {
		if len(m.sources) == 0 {
			m.closeOutput()
			return
		}

		for _, src := range m.sources {
			src := src
			m.wg.Add(1)
			go m.forward(src)
		}

		go func() {
			m.wg.Wait()
			m.closeOutput()
		}()
	})
}

func (m *Mux) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		for _, src := range m.sources {
			src.Stop()
		}
		m.wg.Wait()
		m.closeOutput()
	})
}

// Events yields the merged stream. The channel closes once every source
// channel has closed or the mux is stopped.
func (m *Mux) Events() <-chan model.PointEvent {
	return m.events
}

func (m *Mux) forward(src feed.Source) {
	defer m.wg.Done()

	events := src.Events()
	for {
		select {
		case <-m.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			select {
			case m.events <- ev:
			case <-m.ctx.Done():
				return
			}
		}
	}
}

func (m *Mux) closeOutput() {
	m.closeOnce.Do(func() {
		close(m.events)
	})
}
