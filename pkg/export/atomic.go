package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const tempFilePrefix = ".stickies-report-"

// AtomicFileWriter writes through a temp file in the target directory and
// renames it into place, so readers never see a half-written report.
type AtomicFileWriter struct {
	// Perm defaults to 0644.
	Perm os.FileMode
}

func (w AtomicFileWriter) WriteFile(ctx context.Context, path, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("export: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("export: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("export: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return "", fmt.Errorf("export: chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("export: rename to %s: %w", path, err)
	}
	return path, nil
}
