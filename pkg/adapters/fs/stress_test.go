package fs_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scrawl/pkg/adapters/fs"
	"github.com/aretw0/scrawl/pkg/core"
)

// TestConcurrency_TwoWritersOneFile simulates two processes editing the same
// notes file while a third watches it. Last writer wins, so notes may be
// lost, but the file must always decode and the watching store must end up
// with exactly what is on disk.
func TestConcurrency_TwoWritersOneFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	path := filepath.Join(t.TempDir(), "notes.json")
	open := func() *core.Store {
		slot := fs.NewSlot(fs.Config{Path: path})
		require.NoError(t, slot.Initialize(context.Background()))
		store := core.NewStore(slot)
		require.NoError(t, store.Load(context.Background()))
		return store
	}
	writerA, writerB, observer := open(), open(), open()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := observer.Watch(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for name, store := range map[string]*core.Store{"a": writerA, "b": writerB} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ctx.Err() == nil; i++ {
				// Pick up the other writer's work before writing, like an editor would.
				_, _ = store.Reload(context.Background())
				if _, err := store.Add(context.Background(), fmt.Sprintf("%s-%d", name, i), ""); err != nil {
					t.Errorf("writer %s: %v", name, err)
					return
				}
				time.Sleep(time.Duration(rand.IntN(10)) * time.Millisecond)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range stream {
		}
	}()

	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	onDisk, err := core.JSONCodec{}.Decode(data)
	require.NoError(t, err, "file must never be torn")

	_, err = observer.Reload(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(onDisk, observer.Notes()); diff != "" {
		t.Errorf("observer out of sync (-disk +observer):\n%s", diff)
	}
	t.Logf("Survived with %d notes on disk", len(onDisk))
}
