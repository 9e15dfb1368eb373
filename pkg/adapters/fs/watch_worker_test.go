package fs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scrawl/pkg/core"
)

// A watcher that dies underneath the loop must not leave a pending fire
// stuck on an unread events channel.
func TestWatchWorker_ClosedWatcherReleasesPendingFire(t *testing.T) {
	slot := NewSlot(Config{Path: filepath.Join(t.TempDir(), "notes.json")})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &watchWorker{
		slot:      slot,
		watcher:   watcher,
		events:    make(chan core.Event),
		debouncer: newDebouncer(time.Millisecond),
		cancel:    cancel,
	}

	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	// Nobody reads w.events, so this fire blocks on send.
	w.process(ctx, fsnotify.Event{Name: slot.Path, Op: fsnotify.Write})
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, watcher.Close())

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "channel closed")
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after its watcher closed")
	}

	_, open := <-w.events
	assert.False(t, open)
}
