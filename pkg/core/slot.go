package core

import "context"

// Slot defines the contract for the single key-value location holding the
// serialized note collection. Adhering to this interface keeps the store
// independent of the backend (file, SQLite, memory).
type Slot interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories, schema migration).
	Initialize(ctx context.Context) error

	// Load returns the stored bytes. The boolean is false when nothing has been stored yet.
	Load(ctx context.Context) ([]byte, bool, error)

	// Save replaces the stored bytes. Last writer wins.
	Save(ctx context.Context, data []byte) error
}

// Watchable defines an interface for slots that can report changes made by other writers.
type Watchable interface {
	// Watch emits an event every time the stored value changes. The channel
	// is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
