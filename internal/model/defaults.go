package model

import "time"

// Shared defaults used by both the adapters and the TUI.
const (
	DefaultPollPeriod     = 1 * time.Second
	DefaultFrameInterval  = 200 * time.Millisecond
	DefaultWarningBacklog = 1000
	DefaultWarningDisplay = 5 * time.Second
	DefaultViewSpan       = 60 * time.Second
	DefaultBacklog        = 0 // point retention; 0 = keep everything
	DefaultMaxLineSize    = 1024 * 1024
	DefaultDebounce       = 100 * time.Millisecond
)
