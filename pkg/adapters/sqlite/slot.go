// Package sqlite implements core.Slot as one row of a key-value table in an
// embedded SQLite database. Uses ncruces/go-sqlite3/driver which provides a
// database/sql interface without cgo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/aretw0/scrawl/pkg/core"
)

// DefaultKey is the row key holding the note collection.
const DefaultKey = "notes"

const schema = `
CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// Config holds the configuration for the SQLite slot.
type Config struct {
	// DSN is a file path or ":memory:".
	DSN      string
	Key      string
	ReadOnly bool
	Logger   *slog.Logger
}

// Slot stores the serialized collection under a single key.
type Slot struct {
	db     *sql.DB
	config Config
}

// Open opens (or creates) the database. Call Initialize before use.
func Open(config Config) (*Slot, error) {
	if config.DSN == "" {
		return nil, fmt.Errorf("sqlite dsn is empty")
	}
	if config.Key == "" {
		config.Key = DefaultKey
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite3", config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: a ":memory:" database exists per connection, and
	// writes are serialized anyway.
	db.SetMaxOpenConns(1)

	return &Slot{db: db, config: config}, nil
}

// Initialize creates the schema. A read-only slot leaves the database
// untouched; Load then reports an absent value until a writer creates the table.
func (s *Slot) Initialize(ctx context.Context) error {
	if s.config.ReadOnly {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Slot) Load(ctx context.Context) ([]byte, bool, error) {
	if s.config.ReadOnly {
		exists, err := s.tableExists(ctx)
		if err != nil {
			return nil, false, err
		}
		if !exists {
			return nil, false, nil
		}
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.config.Key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", s.config.Key, err)
	}
	return data, true, nil
}

func (s *Slot) Save(ctx context.Context, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if data == nil {
		data = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.config.Key, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.config.Key, err)
	}
	s.config.Logger.Debug("notes written", "key", s.config.Key, "bytes", len(data))
	return nil
}

func (s *Slot) tableExists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'slots'`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}

// Close closes the database connection.
func (s *Slot) Close() error {
	return s.db.Close()
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "sqlite"
}

var _ core.Slot = (*Slot)(nil)
