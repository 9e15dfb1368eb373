package platform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/scrawl/pkg/adapters/fs"
	"github.com/aretw0/scrawl/pkg/adapters/memory"
	"github.com/aretw0/scrawl/pkg/adapters/sqlite"
	"github.com/aretw0/scrawl/pkg/core"
)

// Init prepares the slot described by uri and the options, without loading it.
//
// It returns the initialized core.Slot.
func Init(uri string, opts ...Option) (core.Slot, error) {
	slot, _, err := open(context.Background(), uri, opts...)
	return slot, err
}

func open(ctx context.Context, uri string, opts ...Option) (core.Slot, *options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	// 1. Check for injected slot
	if o.slot != nil {
		if err := o.slot.Initialize(ctx); err != nil {
			return nil, nil, err
		}
		return o.slot, o, nil
	}

	// 2. Build based on Adapter
	var slot core.Slot
	var err error

	switch o.adapter {
	case "fs":
		slot = fs.NewSlot(fs.Config{
			Path:         resolve(uri, o),
			MustExist:    o.flag("must_exist"),
			ReadOnly:     o.flag("read_only"),
			Logger:       o.logger,
			ErrorHandler: errorHandler(o),
		})
	case "sqlite":
		slot, err = openSQLite(uri, o)
	case "memory":
		slot = memory.NewSlot()
	default:
		return nil, nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, nil, err
	}

	// 3. Run Initialization
	if err := slot.Initialize(ctx); err != nil {
		if c, ok := slot.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		return nil, nil, err
	}

	o.logger.Debug("slot ready", "adapter", o.adapter)
	return slot, o, nil
}

func openSQLite(dsn string, o *options) (core.Slot, error) {
	// In-memory and URI style DSNs are never rewritten.
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		dsn = resolve(dsn, o)
	}
	key, _ := o.config["key"].(string)
	return sqlite.Open(sqlite.Config{
		DSN:      dsn,
		Key:      key,
		ReadOnly: o.flag("read_only"),
		Logger:   o.logger,
	})
}

func errorHandler(o *options) func(error) {
	fn, _ := o.config["watcher_error_handler"].(func(error))
	return fn
}

// resolve applies the dev sandbox rules to a file path.
func resolve(path string, o *options) string {
	isReadOnly := o.flag("read_only")
	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := o.flag("temp_dir") || (IsDevRun() && !bypassSafety)
	resolved := ResolvePath(path, useTemp)

	if IsDevRun() {
		switch {
		case !bypassSafety:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		case isReadOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	if useTemp && resolved != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}
