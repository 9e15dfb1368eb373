package scrawl

import (
	"log/slog"
	"time"

	"github.com/aretw0/scrawl/internal/platform"
	"github.com/aretw0/scrawl/pkg/core"
	"github.com/aretw0/scrawl/pkg/session"
	"github.com/aretw0/scrawl/pkg/view"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Edit is a public alias for a partial note update.
type Edit = core.Edit

// Store is a public alias for the note store.
type Store = core.Store

// Session is a public alias for the transient front-end state.
type Session = session.Session

// SortOption is a public alias for the list orderings.
type SortOption = view.SortOption

const (
	SortTitle       = view.SortTitle
	SortDateCreated = view.SortDateCreated
	SortDateUpdated = view.SortDateUpdated
)

// --- Configuration ---

// Option defines a functional option for opening a notebook.
type Option = platform.Option

// WithAdapter selects the storage adapter by name: "fs" (default), "sqlite" or "memory".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSlot injects a custom storage slot.
func WithSlot(slot core.Slot) Option {
	return platform.WithSlot(slot)
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist requires the directory holding the notes file to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used when running via `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer allows specifying the size of each watcher's event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator overrides the UUIDv7 id generator.
func WithIDGenerator(fn func() (string, error)) Option {
	return platform.WithIDGenerator(fn)
}

// WithCodec forces a codec instead of picking one from the file extension.
func WithCodec(c core.Codec) Option {
	return platform.WithCodec(c)
}

// WithKey sets the row key used by the sqlite adapter.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithWatcherErrorHandler receives runtime failures of the file watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens and loads the notebook at path.
func New(path string, opts ...Option) (*Store, error) {
	return platform.New(path, opts...)
}

// NewSession wraps a store with query, sort and edit state.
func NewSession(store *Store, opts ...session.Option) *Session {
	return session.New(store, opts...)
}

// Project filters notes by query and orders them by sort.
func Project(notes []Note, query string, sort SortOption) []Note {
	return view.Project(notes, query, sort)
}

// --- Safety & Utils ---

// ResolvePath determines the actual notes file based on safety rules.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding a .scrawl notebook.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
