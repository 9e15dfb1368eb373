// Package memory provides a process-local Slot. It plays the role browser
// storage plays for a web page: cheap, synchronous, gone when the process exits.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/scrawl/pkg/core"
)

// Slot keeps the stored bytes in memory.
type Slot struct {
	mu       sync.RWMutex
	data     []byte
	present  bool
	readOnly bool
	saves    int
}

// NewSlot creates an empty memory slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Seed creates a slot that already holds data, as if a previous session saved it.
func Seed(data []byte) *Slot {
	return &Slot{data: slices.Clone(data), present: true}
}

// SetReadOnly toggles write rejection.
func (s *Slot) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

func (s *Slot) Initialize(ctx context.Context) error { return nil }

func (s *Slot) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, false, nil
	}
	return slices.Clone(s.data), true, nil
}

func (s *Slot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.data = slices.Clone(data)
	s.present = true
	s.saves++
	return nil
}

// Bytes returns a copy of the stored value, or nil when nothing was saved.
func (s *Slot) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data)
}

// Saves returns how many successful writes the slot received.
func (s *Slot) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "memory"
}

var _ core.Slot = (*Slot)(nil)
