package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes           int    `json:"notes"`
	Persisted       bool   `json:"persisted"`
	Corrupt         bool   `json:"corrupt"`
	Subscribers     int    `json:"subscribers"`
	EventBufferSize int    `json:"event_buffer_size"`
	SlotType        string `json:"slot_type"`
	// Slot is the adapter's own state when it exposes one.
	Slot any `json:"slot,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slotType := "unknown"
	var slotState any
	if i, ok := s.slot.(introspection.Introspectable); ok {
		slotState = i.State()
	}
	if s.slot != nil {
		slotType = "slot"
		if comp, ok := s.slot.(introspection.Component); ok {
			slotType = comp.ComponentType()
		}
	}

	return StoreState{
		Notes:           len(s.notes),
		Persisted:       s.present,
		Corrupt:         s.corrupt,
		Subscribers:     s.broker.len(),
		EventBufferSize: s.eventBufferSize,
		SlotType:        slotType,
		Slot:            slotState,
	}
}

// Corrupt reports whether the last load discarded malformed data.
func (s *Store) Corrupt() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corrupt
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
