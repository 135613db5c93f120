package feed

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tailplot/tailplot/internal/model"
)

// Watcher turns file-change notifications and a fixed interval into a
// coalesced stream of reload triggers for poll-mode adapters. The
// directory of the path is watched rather than the path itself so that
// removing and recreating the file keeps triggering reloads. Bursts of
// change events are debounced into a single trigger; the interval tick
// always fires as a staleness bound and as the fallback when
// notification registration fails.
type Watcher struct {
	triggers chan struct{}
}

// Watch starts watching path (a plain path or a glob pattern) and fires
// one initial trigger immediately so poll adapters load at startup.
// The watcher stops when ctx is cancelled, closing the trigger channel.
func Watch(ctx context.Context, path string, period time.Duration, warn *WarningSink) *Watcher {
	w := &Watcher{triggers: make(chan struct{}, 1)}
	go w.run(ctx, path, period, warn)
	return w
}

// Triggers returns the reload signal channel. Closed on cancellation.
func (w *Watcher) Triggers() <-chan struct{} { return w.triggers }

func (w *Watcher) run(ctx context.Context, path string, period time.Duration, warn *WarningSink) {
	defer close(w.triggers)

	w.fire()

	var events chan fsnotify.Event
	var errs chan error
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		warn.Reportf(path, "file notification unavailable, polling every %v: %v", period, err)
	} else {
		defer fsw.Close()
		if aerr := fsw.Add(filepath.Dir(path)); aerr != nil {
			warn.Reportf(path, "cannot watch directory, polling every %v: %v", period, aerr)
		} else {
			events, errs = fsw.Events, fsw.Errors
		}
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events, errs = nil, nil
				continue
			}
			if watchRelevant(ev, path) {
				debounce = time.After(model.DefaultDebounce)
			}
		case werr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			warn.Reportf(path, "watch: %v", werr)
		case <-debounce:
			debounce = nil
			w.fire()
		case <-ticker.C:
			w.fire()
		}
	}
}

// fire coalesces: a pending trigger absorbs any newer ones.
func (w *Watcher) fire() {
	select {
	case w.triggers <- struct{}{}:
	default:
	}
}

// watchRelevant reports whether a directory event concerns the watched
// path. Create and Rename matter as much as Write: a removed file
// coming back is a normal future reload, not an error.
func watchRelevant(ev fsnotify.Event, path string) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	if hasGlobMeta(path) {
		ok, err := filepath.Match(filepath.Base(path), filepath.Base(ev.Name))
		return err == nil && ok
	}
	return filepath.Clean(ev.Name) == filepath.Clean(path)
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
