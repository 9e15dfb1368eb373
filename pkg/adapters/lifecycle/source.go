// Package lifecycle exposes store events as a lifecycle.Source, so that
// anything built on github.com/aretw0/lifecycle can react to note changes.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/scrawl/pkg/core"
)

// Watcher is satisfied by *core.Store.
type Watcher interface {
	Watch(ctx context.Context) (<-chan core.Event, error)
}

type storeSource struct {
	store Watcher
	out   chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that subscribes to store when started.
func NewSource(store Watcher) lifecycle.Source {
	return &storeSource{
		store: store,
		out:   make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start subscribes to the store and forwards its events until ctx is done
// or the subscription ends. The Events channel is closed afterwards.
func (s *storeSource) Start(ctx context.Context) error {
	events, err := s.store.Watch(ctx)
	if err != nil {
		close(s.out)
		return fmt.Errorf("failed to subscribe to store: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event has a String method, which is all lifecycle.Event asks for.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
