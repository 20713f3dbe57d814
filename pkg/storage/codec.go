package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"tableflip.dev/stickies/pkg/note"
)

// Encode serialises the collection as an indented JSON array.
func Encode(notes []note.Note) ([]byte, error) {
	if notes == nil {
		notes = []note.Note{}
	}
	return json.MarshalIndent(notes, "", "  ")
}

// Decode deserialises a collection. Empty input yields no records. A single
// object (rather than an array) is accepted as a one-note collection.
func Decode(data []byte) ([]note.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []note.Record{}, nil
	}
	var records []note.Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var single note.Record
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("storage: decode notes: %w", err)
	}
	return []note.Record{single}, nil
}
