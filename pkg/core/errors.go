package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned when an operation targets a note that does not exist.
	ErrNotFound = errors.New("note not found")
	// ErrCorrupt wraps decoding failures of the persisted slot.
	ErrCorrupt = errors.New("persisted notes are corrupt")
	// ErrReadOnly is returned by slots that refuse writes.
	ErrReadOnly = errors.New("slot is in read-only mode")
)
