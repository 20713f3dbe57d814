package board

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/storage"
)

// LoadFromStorage replaces the collection with what the storage tiers hold.
// Records written by older versions are backfilled. When only the fallback
// tier can be read, its content is written back to the primary right away.
// Failures are logged; if nothing can be read the collection is left empty.
func (s *Store) LoadFromStorage(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	// A save in flight finishes before the read, and none starts until the
	// collection is replaced, so storage never ends up older than memory.
	s.saveMu.Lock()
	res := s.chain.Load(ctx)
	if res.PrimaryErr != nil {
		s.logger.Warn("load from primary store failed", zap.Error(res.PrimaryErr))
	}
	if res.FallbackErr != nil {
		s.logger.Error("load from fallback store failed", zap.Error(res.FallbackErr))
	}
	loadsTotal.WithLabelValues(string(res.Source)).Inc()

	s.mu.Lock()
	s.notes = s.hydrateLocked(res.Records)
	count := len(s.notes)
	// The state a pending save would have written no longer exists.
	s.cancelPendingLocked()
	s.mu.Unlock()
	s.saveMu.Unlock()

	s.logger.Debug("notes loaded", zap.String("tier", string(res.Source)), zap.Int("count", count))
	s.notify(Event{Type: EventReload})

	if res.Source == storage.TierFallback && count > 0 {
		s.logger.Info("restoring primary store from fallback", zap.Int("count", count))
		s.SaveToStorage(ctx)
	}
}

// SaveToStorage writes the current collection to the primary tier and mirrors
// it into the fallback. Failures are logged, never returned: the in-memory
// collection stays authoritative and the next mutation retries.
func (s *Store) SaveToStorage(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snapshot := s.Notes()
	res := s.chain.Save(ctx, snapshot)
	s.recordSave(res)

	switch {
	case res.PrimaryErr != nil && res.Persisted():
		s.logger.Warn("save to primary store failed, kept fallback copy",
			zap.Error(res.PrimaryErr), zap.Int("count", len(snapshot)))
	case !res.Persisted():
		s.logger.Error("save failed on every store",
			zap.Error(res.Err()), zap.Int("count", len(snapshot)))
	case res.FallbackErr != nil:
		s.logger.Warn("mirror to fallback store failed", zap.Error(res.FallbackErr))
	default:
		s.logger.Debug("notes saved", zap.Int("count", len(snapshot)))
	}
}

// CreateBackup snapshots the collection under a timestamped name and reports
// whether it worked.
func (s *Store) CreateBackup(ctx context.Context) bool {
	name, err := s.chain.Backup(ctx, s.Notes())
	if err != nil {
		backupsTotal.WithLabelValues("failure").Inc()
		s.logger.Error("backup failed", zap.Error(err))
		return false
	}
	backupsTotal.WithLabelValues("success").Inc()
	s.logger.Info("backup created", zap.String("name", name))
	return true
}

// Pending reports whether a debounced save is waiting to fire.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Flush cancels the debounce timer and, if a save was pending, saves now.
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	pending := s.pending
	s.cancelPendingLocked()
	s.mu.Unlock()

	if pending {
		s.SaveToStorage(ctx)
	}
}

// Close flushes pending changes and stops arming new timers. Later mutations
// still change the collection and are written by the next Flush.
func (s *Store) Close(ctx context.Context) {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.Flush(ctx)
}

// scheduleSaveLocked re-arms the debounce timer. A mutation inside the quiet
// period supersedes the pending save; only the latest state is written.
func (s *Store) scheduleSaveLocked() {
	s.pending = true
	pendingSave.Set(1)
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.closed {
		return
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.quiet, func() {
		s.fire(gen)
	})
}

// fire runs on the timer goroutine. A timer that was superseded after it
// started running sees a newer generation and does nothing.
func (s *Store) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	s.mu.Unlock()
	pendingSave.Set(0)

	s.SaveToStorage(context.Background())
}

func (s *Store) cancelPendingLocked() {
	s.pending = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pendingSave.Set(0)
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify(Event{Type: EventLoading, Loading: loading})
}

// hydrateLocked backfills records and drops duplicate ids, keeping the first.
func (s *Store) hydrateLocked(records []note.Record) []note.Note {
	opts := note.HydrateOptions{
		Now:      s.now(),
		Position: s.randomPositionLocked,
		NewID:    s.newID,
	}
	notes := make([]note.Note, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		n := r.Hydrate(opts)
		if _, dup := seen[n.ID]; dup {
			s.logger.Warn("dropping note with duplicate id", zap.String("id", n.ID))
			continue
		}
		seen[n.ID] = struct{}{}
		notes = append(notes, n)
	}
	return notes
}

func (s *Store) recordSave(res storage.SaveResult) {
	savesTotal.WithLabelValues(string(storage.TierPrimary), outcome(res.PrimaryErr)).Inc()
	if !res.FallbackSkipped {
		savesTotal.WithLabelValues(string(storage.TierFallback), outcome(res.FallbackErr)).Inc()
	}
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
