// Package fs implements core.Slot with a single file on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/scrawl/pkg/core"
)

// Config holds the configuration for the file slot.
type Config struct {
	Path      string // e.g. ~/.local/share/scrawl/notes.json
	MustExist bool   // parent directory must already exist
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures which are otherwise only logged.
	ErrorHandler func(error)
}

// Slot stores the serialized collection in one file, replaced atomically on every save.
type Slot struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// NewSlot creates a file slot. It does no I/O until Initialize/Load/Save are called.
func NewSlot(config Config) *Slot {
	path := filepath.Clean(config.Path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Slot{
		Path:   path,
		config: config,
	}
}

// Initialize makes sure the parent directory exists (creating it unless
// MustExist or ReadOnly is set) and that the slot path is not a directory.
func (s *Slot) Initialize(ctx context.Context) error {
	dir := filepath.Dir(s.Path)

	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("notes directory does not exist: %s", dir)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("notes directory is not a directory: %s", dir)
		}
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create notes directory: %w", err)
		}
	}

	if info, err := os.Stat(s.Path); err == nil && info.IsDir() {
		return fmt.Errorf("notes path is a directory: %s", s.Path)
	}
	return nil
}

// Load reads the file. A missing file means nothing was stored yet.
func (s *Slot) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, true, nil
}

// Save replaces the file contents atomically.
func (s *Slot) Save(ctx context.Context, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeFileAtomic(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	s.config.Logger.Debug("notes written", "path", s.Path, "bytes", len(data))
	s.recordWrite()
	return nil
}

func (s *Slot) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWrite = &now
	s.writes++
}

var _ core.Slot = (*Slot)(nil)
var _ core.Watchable = (*Slot)(nil)
