package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/stickies/pkg/note"
)

type pickerFunc func(ctx context.Context) (string, error)

func (f pickerFunc) PickDirectory(ctx context.Context) (string, error) { return f(ctx) }

type captureWriter struct {
	path    string
	content string
}

func (w *captureWriter) WriteFile(_ context.Context, path, content string) (string, error) {
	w.path, w.content = path, content
	return path, nil
}

var now = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "sticky-notes-report-2025-06-10.md", FileName(now))
}

func TestExportWritesReport(t *testing.T) {
	dir := t.TempDir()
	notes := []note.Note{note.New("a", "Buy milk", "", note.Yellow, note.Position{X: 50, Y: 50}, now)}

	path, err := Exporter{Picker: StaticDirectory(dir), Writer: AtomicFileWriter{}}.Export(context.Background(), notes, now)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sticky-notes-report-2025-06-10.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Buy milk")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestExportPickerCanceled(t *testing.T) {
	w := &captureWriter{}
	picker := pickerFunc(func(context.Context) (string, error) { return "", ErrCanceled })

	_, err := Exporter{Picker: picker, Writer: w}.Export(context.Background(), nil, now)

	assert.ErrorIs(t, err, ErrCanceled)
	assert.Empty(t, w.path)
}

func TestExportPassesContent(t *testing.T) {
	w := &captureWriter{}
	picker := pickerFunc(func(context.Context) (string, error) { return "/reports", nil })

	path, err := Exporter{Picker: picker, Writer: w}.Export(context.Background(), nil, now)

	require.NoError(t, err)
	assert.Equal(t, "/reports/sticky-notes-report-2025-06-10.md", path)
	assert.Contains(t, w.content, "# Sticky Notes Report")
}

func TestStaticDirectory(t *testing.T) {
	ctx := context.Background()

	_, err := StaticDirectory("").PickDirectory(ctx)
	assert.ErrorIs(t, err, ErrCanceled)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = StaticDirectory(file).PickDirectory(ctx)
	assert.Error(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = StaticDirectory(t.TempDir()).PickDirectory(canceled)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAtomicFileWriterReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	got, err := AtomicFileWriter{}.WriteFile(context.Background(), path, "new")

	require.NoError(t, err)
	assert.Equal(t, path, got)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestAtomicFileWriterMissingDir(t *testing.T) {
	_, err := AtomicFileWriter{}.WriteFile(context.Background(), filepath.Join(t.TempDir(), "nope", "r.md"), "x")
	assert.Error(t, err)
}
