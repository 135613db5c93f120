package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/tailplot/tailplot/internal/model"
)

// Source is the unified interface for all input adapters. An adapter
// owns exclusive read access to its file or pipe for its lifetime and
// releases it on Stop or end-of-input.
type Source interface {
	Events() <-chan model.PointEvent // read-only channel of normalized points
	Stop()                           // graceful shutdown
	Name() string                    // configured path, used as warning prefix
}

// DefaultSourceBuffer is the per-adapter event channel buffer size.
const DefaultSourceBuffer = 1024

// Open builds the adapter for cfg. A path that cannot be resolved at
// startup is an error; a path disappearing later is handled by the
// adapter itself (EOF for streams, empty reloads for polls).
func Open(ctx context.Context, cfg model.SourceConfig, warn *WarningSink) (Source, error) {
	switch cfg.Kind {
	case model.JSONStream:
		if cfg.Path == "-" {
			return NewJSONStdin(ctx, warn), nil
		}
		return NewJSONStream(ctx, cfg, warn)
	case model.JSONPoll:
		return NewJSONPoll(ctx, cfg, warn)
	case model.CSVStream:
		return NewCSVStream(ctx, cfg, warn)
	case model.CSVPoll:
		return NewCSVPoll(ctx, cfg, warn)
	default:
		return nil, fmt.Errorf("unknown source kind %v", cfg.Kind)
	}
}

func delimiter(cfg model.SourceConfig) rune {
	if cfg.Delimiter == 0 {
		return ','
	}
	return cfg.Delimiter
}

func pollPeriod(cfg model.SourceConfig) time.Duration {
	if cfg.PollPeriod <= 0 {
		return model.DefaultPollPeriod
	}
	return cfg.PollPeriod
}
