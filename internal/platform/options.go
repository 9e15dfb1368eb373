package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/scrawl/pkg/core"
)

// options holds the internal configuration used to open a notebook.
type options struct {
	slot    core.Slot
	codec   core.Codec
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}
	store   []core.StoreOption
}

// Option defines a functional option for configuring scrawl.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

func (o *options) flag(key string) bool {
	v, _ := o.config[key].(bool)
	return v
}

// WithSlot injects a ready slot (e.g. memory.Slot in tests).
// The adapter name and the URI are then ignored.
func WithSlot(slot core.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCodec forces a codec instead of picking one from the file extension.
func WithCodec(c core.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Add, Delete and CommitEdit return ErrReadOnly.
// 2. No directory or schema is created.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithMustExist requires the directory holding the notes file to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), the notes file is redirected to a temporary directory
// to prevent accidental data loss.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithKey sets the row key used by the sqlite adapter. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		o.config["key"] = key
	}
}

// WithWatcherErrorHandler registers a callback for runtime failures of the
// file watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.store = append(o.store, core.WithEventBuffer(size))
	}
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.store = append(o.store, core.WithClock(now))
	}
}

// WithIDGenerator overrides the UUIDv7 id generator.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(o *options) {
		o.store = append(o.store, core.WithIDGenerator(fn))
	}
}
