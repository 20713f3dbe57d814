package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/stickies/pkg/note"
)

const fileExt = ".json"

// DiskvAdapter keeps the collection and its backups as JSON files in a single
// directory.
type DiskvAdapter struct {
	d        *diskv.Diskv
	basePath string
	now      clock
}

// NewDiskv creates an adapter rooted at basePath. Writes go through a temp
// directory so a crash never leaves a half-written notes file behind.
func NewDiskv(basePath string) (*DiskvAdapter, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &DiskvAdapter{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, ".tmp"),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
		}),
		basePath: basePath,
	}, nil
}

// WithClock overrides the clock used to name backups.
func (a *DiskvAdapter) WithClock(now func() time.Time) *DiskvAdapter {
	a.now = now
	return a
}

// Path returns the file holding the primary record.
func (a *DiskvAdapter) Path() string {
	return filepath.Join(a.basePath, NotesKey+fileExt)
}

func (a *DiskvAdapter) Load(_ context.Context) ([]note.Record, error) {
	if !a.d.Has(NotesKey) {
		return []note.Record{}, nil
	}
	val, err := a.d.Read(NotesKey)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", NotesKey, err)
	}
	return Decode(val)
}

func (a *DiskvAdapter) Save(_ context.Context, notes []note.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	if err := a.d.Write(NotesKey, data); err != nil {
		return fmt.Errorf("storage: write %s: %w", NotesKey, err)
	}
	return nil
}

func (a *DiskvAdapter) Backup(_ context.Context, notes []note.Note) (string, error) {
	data, err := Encode(notes)
	if err != nil {
		return "", err
	}
	name := BackupName(a.now.now())
	if err := a.d.Write(name, data); err != nil {
		return "", fmt.Errorf("storage: write backup %s: %w", name, err)
	}
	return name, nil
}

// Backups lists the names of all backups, oldest first.
func (a *DiskvAdapter) Backups(ctx context.Context) []string {
	names := make([]string, 0)
	for key := range a.d.KeysPrefix(BackupPrefix, ctx.Done()) {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + fileExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, fileExt)
}
