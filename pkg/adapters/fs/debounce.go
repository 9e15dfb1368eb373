package fs

import (
	"sync"
	"time"

	"github.com/aretw0/scrawl/pkg/core"
)

// debouncer collapses a burst of events into the last one.
// An atomic save produces create/rename/chmod in quick succession and the
// store only needs to hear about it once.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending = e
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		ev, stopped := d.pending, d.stopped
		d.mu.Unlock()
		if !stopped {
			fire(ev)
		}
	})
}

// stopAndWait rejects new events and waits (up to timeout) for an in-flight fire to return.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
