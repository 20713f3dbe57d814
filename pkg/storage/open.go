package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	sqliteFile = "stickies.db"
	boltFile   = "fallback.db"
)

// Tiers bundles the opened primary and fallback stores.
type Tiers struct {
	Primary  Adapter
	Fallback Backend
	// WatchPath is the file that changes whenever the primary record is
	// written. It is empty when the backend cannot be watched meaningfully.
	WatchPath string
	// Warnings records tiers that failed to open and were degraded.
	Warnings []error

	closers []io.Closer
}

// Chain returns the tiers as a load/save chain.
func (t *Tiers) Chain() Chain {
	return Chain{Primary: t.Primary, Fallback: t.Fallback}
}

// Close releases every opened store.
func (t *Tiers) Close() error {
	var errs []error
	for i := len(t.closers) - 1; i >= 0; i-- {
		errs = append(errs, t.closers[i].Close())
	}
	return errors.Join(errs...)
}

// Lister is implemented by primaries that can enumerate their backups.
type Lister interface {
	Backups(ctx context.Context) []string
}

// Backups lists backup names when the primary supports it.
func (t *Tiers) Backups(ctx context.Context) ([]string, bool) {
	l, ok := t.Primary.(Lister)
	if !ok {
		return nil, false
	}
	return l.Backups(ctx), true
}

// Open creates the stores selected by cfg. The primary tier must open; a
// fallback that cannot be opened degrades to an in-memory one so the board
// keeps working.
func Open(cfg *Config) (*Tiers, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure %s: %w", cfg.Path, err)
	}

	t := &Tiers{}
	switch cfg.Backend {
	case "", BackendDiskv:
		a, err := NewDiskv(cfg.Path)
		if err != nil {
			return nil, err
		}
		t.Primary = a
		t.WatchPath = a.Path()
	case BackendSQLite:
		a, err := NewSQLite(filepath.Join(cfg.Path, sqliteFile))
		if err != nil {
			return nil, err
		}
		t.Primary = a
		t.closers = append(t.closers, a)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend)
	}

	switch cfg.Fallback {
	case "", FallbackBolt:
		b, err := NewBolt(filepath.Join(cfg.Path, boltFile))
		if err != nil {
			t.Warnings = append(t.Warnings, err)
			t.Fallback = NewMemory()
			break
		}
		t.Fallback = b
		t.closers = append(t.closers, b)
	case FallbackRedis:
		r := NewRedis(cfg.Redis)
		t.Fallback = r
		t.closers = append(t.closers, r)
	case FallbackMemory:
		t.Fallback = NewMemory()
	default:
		_ = t.Close()
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Fallback)
	}
	return t, nil
}
