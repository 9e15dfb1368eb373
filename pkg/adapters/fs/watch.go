package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/scrawl/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

// Watch reports changes to the slot file made by any writer, this process included.
// The parent directory is watched rather than the file itself because an
// atomic save replaces the inode.
func (s *Slot) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	events := make(chan core.Event)
	w := &watchWorker{
		slot:      s,
		watcher:   watcher,
		events:    events,
		debouncer: newDebouncer(watchDebounce),
		cancel:    cancel,
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.reportError(fmt.Errorf("watcher failed: %w", err))
	}))
	return events, nil
}

type watchWorker struct {
	slot      *Slot
	watcher   *fsnotify.Watcher
	events    chan core.Event
	debouncer *debouncer
	// cancel releases a fire blocked on send when the loop ends on its own.
	cancel context.CancelFunc
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.slot.config.Logger
	defer close(w.events)
	defer w.slot.setWatcherActive(false)
	defer w.watcher.Close()
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()

	err = w.loop(ctx)
	w.cancel()

	// Wait for in-flight timers before the deferred close of the events channel.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.reportError(wErr)
		}
	}
}

// process filters events down to the slot file and forwards them through the debouncer.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.slot.Path {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}
	w.slot.config.Logger.Debug("slot file changed", "op", event.Op.String(), "path", event.Name)

	w.debouncer.add(core.Event{
		Type:      eType,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) reportError(err error) {
	w.slot.config.Logger.Error("watcher error", "error", err)
	if w.slot.config.ErrorHandler != nil {
		w.slot.config.ErrorHandler(err)
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}
