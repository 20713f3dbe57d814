package storage

import (
	"context"
	"sort"
	"sync"

	"tableflip.dev/stickies/pkg/note"
)

// Memory is a process-local Backend. It stands in for browser local storage
// and is the fallback of last resort.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]note.Record, error) {
	m.mu.Lock()
	data := append([]byte(nil), m.data...)
	m.mu.Unlock()
	return Decode(data)
}

func (m *Memory) Save(_ context.Context, notes []note.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Bytes returns the last saved blob.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// MemoryAdapter is an in-memory Adapter. Backups are kept alongside the
// primary blob.
type MemoryAdapter struct {
	Memory

	backups map[string][]byte
	now     clock
}

// NewMemoryAdapter returns an empty in-memory primary.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{backups: make(map[string][]byte)}
}

func (m *MemoryAdapter) Backup(_ context.Context, notes []note.Note) (string, error) {
	data, err := Encode(notes)
	if err != nil {
		return "", err
	}
	name := BackupName(m.now.now())
	m.mu.Lock()
	m.backups[name] = data
	m.mu.Unlock()
	return name, nil
}

// Backups lists the names of all backups, oldest first.
func (m *MemoryAdapter) Backups(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.backups))
	for name := range m.backups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
