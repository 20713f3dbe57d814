// Package export writes the Markdown report to a user-chosen directory.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/views"
)

// ErrCanceled is returned by a DirectoryPicker when the user backs out.
var ErrCanceled = errors.New("export: canceled")

// DirectoryPicker chooses where the report goes.
type DirectoryPicker interface {
	PickDirectory(ctx context.Context) (string, error)
}

// FileWriter stores content at path and returns the path actually written.
type FileWriter interface {
	WriteFile(ctx context.Context, path, content string) (string, error)
}

// FileName returns the report file name for the day of now.
func FileName(now time.Time) string {
	return fmt.Sprintf("sticky-notes-report-%s.md", now.Format("2006-01-02"))
}

// Exporter renders the report and hands it to its collaborators.
type Exporter struct {
	Picker DirectoryPicker
	Writer FileWriter
}

// Export renders notes as of now and returns the path of the written report.
func (e Exporter) Export(ctx context.Context, notes []note.Note, now time.Time) (string, error) {
	if e.Picker == nil || e.Writer == nil {
		return "", errors.New("export: picker and writer are required")
	}
	content := views.Markdown(notes, now)

	dir, err := e.Picker.PickDirectory(ctx)
	if err != nil {
		return "", err
	}
	return e.Writer.WriteFile(ctx, filepath.Join(dir, FileName(now)), content)
}

// StaticDirectory always picks the same directory. A leading ~ is expanded.
type StaticDirectory string

func (d StaticDirectory) PickDirectory(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d == "" {
		return "", ErrCanceled
	}
	dir, err := homedir.Expand(string(d))
	if err != nil {
		return "", fmt.Errorf("export: expand %s: %w", d, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("export: %s is not a directory", dir)
	}
	return dir, nil
}
