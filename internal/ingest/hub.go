package ingest

import (
	"context"

	"github.com/tailplot/tailplot/internal/store"
)

// Hub drains the merged event stream into the time series store.
type Hub struct {
	mux   *Mux
	store *store.Store
}

func NewHub(mux *Mux, st *store.Store) *Hub {
	return &Hub{mux: mux, store: st}
}

// Run consumes events until the context is cancelled or the mux output
// closes. Every event is appended in the order it arrives, so the store's
// sequence numbers reflect arrival order across all feeds.
func (h *Hub) Run(ctx context.Context) error {
	events := h.mux.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.store.Append(ev.Series, ev.Time, ev.Value)
		}
	}
}
