package commands

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/stickies/pkg/board"
	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/storage"
)

// session is one command's view of the board: opened tiers, a loaded store
// and the logger both use.
type session struct {
	cfg    *storage.Config
	tiers  *storage.Tiers
	store  *board.Store
	logger *zap.Logger
}

func openSession(ctx context.Context) (*session, error) {
	logger, err := ro.Logger()
	if err != nil {
		return nil, err
	}
	cfg, err := storage.LoadConfig()
	if err != nil {
		return nil, err
	}
	tiers, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range tiers.Warnings {
		logger.Warn("fallback store unavailable, using memory", zap.Error(w))
	}

	store := board.New(tiers.Primary,
		board.WithFallback(tiers.Fallback),
		board.WithQuietPeriod(cfg.QuietPeriod),
		board.WithLogger(logger),
	)
	store.LoadFromStorage(ctx)

	return &session{cfg: cfg, tiers: tiers, store: store, logger: logger}, nil
}

// Close writes any pending change before releasing the stores.
func (s *session) Close(ctx context.Context) error {
	s.store.Close(ctx)
	err := s.tiers.Close()
	_ = s.logger.Sync()
	return err
}

// withSession opens the board, runs fn and always flushes afterwards.
func withSession(ctx context.Context, fn func(s *session) error) (err error) {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(ctx); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// resolve finds a note by full id or by an unambiguous id prefix.
func (s *session) resolve(ref string) (note.Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return note.Note{}, fmt.Errorf("note id required")
	}
	if n, ok := s.store.Get(ref); ok {
		return n, nil
	}
	var matches []note.Note
	for _, n := range s.store.Notes() {
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return note.Note{}, fmt.Errorf("no note matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return note.Note{}, fmt.Errorf("%q matches %d notes, use a longer id", ref, len(matches))
	}
}
