package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec converts the whole note collection to and from the bytes held by a Slot.
type Codec interface {
	Encode(notes []Note) ([]byte, error)
	Decode(data []byte) ([]Note, error)
}

// JSONCodec is the default codec. It writes an array of objects with
// id, title, body, createdAt and updatedAt fields.
type JSONCodec struct{}

func (JSONCodec) Encode(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.MarshalIndent(notes, "", "  ")
}

func (JSONCodec) Decode(data []byte) ([]Note, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorrupt)
	}
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrCorrupt, err)
	}
	if err := validate(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// YAMLCodec stores the collection as a YAML sequence.
type YAMLCodec struct{}

func (YAMLCodec) Encode(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(notes); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(data []byte) ([]Note, error) {
	var notes []Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %v", ErrCorrupt, err)
	}
	if err := validate(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// validate enforces the identity invariant: every note has an ID and no ID repeats.
func validate(notes []Note) error {
	seen := make(map[string]struct{}, len(notes))
	for i, n := range notes {
		if n.ID == "" {
			return fmt.Errorf("%w: note %d has no id", ErrCorrupt, i)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrCorrupt, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}
