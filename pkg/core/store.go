package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// DefaultEventBuffer is the channel capacity given to each Watch subscriber.
const DefaultEventBuffer = 100

// Store owns the authoritative in-memory note collection and mirrors it to a Slot.
// Every mutation encodes the full collection and saves it before the
// in-memory state is replaced, so a failed save leaves the store untouched.
type Store struct {
	mu      sync.RWMutex
	slot    Slot
	codec   Codec
	logger  *slog.Logger
	now     func() time.Time
	newID   func() (string, error)
	notes   []Note
	raw     []byte
	present bool
	corrupt bool

	eventBufferSize int
	broker          *broker
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for warnings (corrupt data) and debug traces.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCodec sets the codec used to (de)serialize the collection. Defaults to JSONCodec.
func WithCodec(c Codec) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the default UUIDv7 generator.
func WithIDGenerator(fn func() (string, error)) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithEventBuffer sets the per-subscriber channel capacity. Zero means DefaultEventBuffer.
func WithEventBuffer(size int) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewID returns a time-ordered UUIDv7 string, so that sorting ids
// lexicographically also sorts notes by creation.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}
	return id.String(), nil
}

// NewStore creates an empty Store on top of slot. Call Load to rehydrate it.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:            slot,
		codec:           JSONCodec{},
		logger:          slog.New(slog.DiscardHandler),
		now:             time.Now,
		newID:           NewID,
		eventBufferSize: DefaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.broker = newBroker(s.eventBufferSize, s.logger)
	return s
}

// Load rehydrates the collection from the slot.
// A missing value yields an empty collection. Malformed data also yields an
// empty collection: it is logged as a warning and reported by State, but it
// is not an error. Only slot I/O failures are returned.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(data, ok)
	return nil
}

func (s *Store) replaceLocked(data []byte, present bool) {
	s.raw = data
	s.present = present
	s.corrupt = false
	s.notes = nil
	if !present {
		return
	}

	notes, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("discarding unreadable notes, starting empty", "error", err, "bytes", len(data))
		s.corrupt = true
		return
	}
	s.notes = notes
	s.logger.Debug("notes loaded", "count", len(notes))
}

// Notes returns a copy of the collection in insertion order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get retrieves a note by its ID.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i], true
	}
	return Note{}, false
}

// Add creates a note with a fresh ID, appends it and persists the collection.
// Empty titles and bodies are accepted as-is.
func (s *Store) Add(ctx context.Context, title, body string) (Note, error) {
	id, err := s.newID()
	if err != nil {
		return Note{}, err
	}
	now := s.now()
	n := Note{ID: id, Title: title, Body: body, CreatedAt: now, UpdatedAt: now}

	s.mu.Lock()
	if s.indexLocked(id) >= 0 {
		s.mu.Unlock()
		return Note{}, fmt.Errorf("generated id %s already exists", id)
	}
	next := append(slices.Clone(s.notes), n)
	err = s.persistLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return Note{}, err
	}

	s.logger.Debug("note added", "id", id)
	s.broker.publish(Event{Type: EventCreate, ID: id, Timestamp: now.Unix()})
	return n, nil
}

// Delete removes the note with the given ID. Deleting an unknown ID is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("delete of unknown note ignored", "id", id)
		return nil
	}
	next := slices.Delete(slices.Clone(s.notes), i, i+1)
	err := s.persistLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Debug("note deleted", "id", id)
	s.broker.publish(Event{Type: EventDelete, ID: id, Timestamp: s.now().Unix()})
	return nil
}

// CommitEdit replaces the fields set in e, stamps UpdatedAt and persists.
// ID and CreatedAt never change. An unknown ID returns an error wrapping ErrNotFound.
func (s *Store) CommitEdit(ctx context.Context, id string, e Edit) (Note, error) {
	now := s.now()

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	updated := e.apply(s.notes[i], now)
	next := slices.Clone(s.notes)
	next[i] = updated
	err := s.persistLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return Note{}, err
	}

	s.logger.Debug("note updated", "id", id)
	s.broker.publish(Event{Type: EventModify, ID: id, Timestamp: now.Unix()})
	return updated, nil
}

// Reload re-reads the slot and replaces the collection when the stored bytes
// differ from the ones this store last loaded or saved. It reports whether
// anything changed.
// The read and the swap happen under the write lock, so a local mutation
// cannot land between them and be overwritten by an older snapshot.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	data, ok, err := s.slot.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("failed to reload notes: %w", err)
	}

	if ok == s.present && bytes.Equal(data, s.raw) {
		s.mu.Unlock()
		return false, nil
	}
	s.replaceLocked(data, ok)
	s.mu.Unlock()

	s.logger.Debug("notes reloaded from slot")
	s.broker.publish(Event{Type: EventReload, Timestamp: s.now().Unix()})
	return true, nil
}

// Watch subscribes to store events. Mutations made through this store are
// reported directly; when the slot is Watchable, changes made by other
// writers trigger a Reload and surface as EventReload.
// The channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	var changes <-chan Event
	if w, ok := s.slot.(Watchable); ok {
		var err error
		changes, err = w.Watch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to watch slot: %w", err)
		}
	}

	out := s.broker.subscribe(ctx)

	if changes != nil {
		lifecycle.Go(ctx, func(ctx context.Context) error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-changes:
					if !ok {
						return nil
					}
					if _, err := s.Reload(ctx); err != nil {
						s.logger.Warn("reload after slot change failed", "error", err)
					}
				}
			}
		})
	}

	return out, nil
}

// Close releases the slot when it holds resources (e.g. a database handle).
func (s *Store) Close() error {
	if c, ok := s.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context, next []Note) error {
	data, err := s.codec.Encode(next)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	s.notes = next
	s.raw = data
	s.present = true
	s.corrupt = false
	return nil
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}
