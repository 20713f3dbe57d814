// Package storage persists the note collection as a single blob in a primary
// store, mirrors it into a simpler fallback store, and writes timestamped
// backups on request.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/stickies/pkg/note"
)

const (
	// NotesKey names the primary record holding the full collection.
	NotesKey = "fu-sendo-it-todos"
	// BackupPrefix prefixes every backup record.
	BackupPrefix = NotesKey + "-backup-"

	backupStampLayout = "2006-01-02T15:04:05.000Z"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// Backend is the load/save contract shared by the primary and fallback tiers.
// Load returns an empty slice and a nil error when nothing was saved yet.
type Backend interface {
	Load(ctx context.Context) ([]note.Record, error)
	Save(ctx context.Context, notes []note.Note) error
}

// Adapter is the primary tier: a Backend that can also snapshot the
// collection under a timestamp-qualified name.
type Adapter interface {
	Backend
	// Backup writes a snapshot distinct from the primary record and returns
	// its name.
	Backup(ctx context.Context, notes []note.Note) (string, error)
}

// BackupName returns the record name used for a backup taken at now.
func BackupName(now time.Time) string {
	stamp := now.UTC().Format(backupStampLayout)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return BackupPrefix + stamp
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
