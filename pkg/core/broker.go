package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
)

// broker fans store events out to Watch subscribers without ever blocking
// the mutating caller: a subscriber whose buffer is full misses the event.
type broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	size   int
	logger *slog.Logger
}

func newBroker(size int, logger *slog.Logger) *broker {
	return &broker{
		subs:   make(map[int]chan Event),
		size:   size,
		logger: logger,
	}
}

func (b *broker) subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, b.size)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
		return nil
	})
	return ch
}

func (b *broker) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.logger.Debug("subscriber buffer full, dropping event", "subscriber", id, "event", e.String())
		}
	}
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
