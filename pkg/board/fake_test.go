package board

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/storage"
)

var errBroken = errors.New("broken")

// recorder is an Adapter that counts writes and can be told to fail.
type recorder struct {
	mu       sync.Mutex
	records  []note.Record
	saves    [][]note.Note
	backups  int
	loadErr  error
	saveErr  error
	backErr  error
	savedSig chan struct{}
	loads    int

	// when set, Save reports on entered and waits for gate before writing
	entered chan struct{}
	gate    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{savedSig: make(chan struct{}, 64)}
}

func (r *recorder) Load(_ context.Context) ([]note.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]note.Record(nil), r.records...), nil
}

func (r *recorder) Save(_ context.Context, notes []note.Note) error {
	if r.gate != nil {
		r.entered <- struct{}{}
		<-r.gate
	}
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		select {
		case r.savedSig <- struct{}{}:
		default:
		}
	}()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves = append(r.saves, notes)
	r.records = make([]note.Record, 0, len(notes))
	for _, n := range notes {
		r.records = append(r.records, note.RecordOf(n))
	}
	return nil
}

func (r *recorder) Backup(_ context.Context, _ []note.Note) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backErr != nil {
		return "", r.backErr
	}
	r.backups++
	return "backup", nil
}

func (r *recorder) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recorder) loadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

func (r *recorder) storedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		ids = append(ids, rec.ID)
	}
	return ids
}

func (r *recorder) lastSave() []note.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func (r *recorder) waitSave(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-r.savedSig:
	case <-time.After(timeout):
		t.Fatalf("no save within %v", timeout)
	}
}

var _ storage.Adapter = (*recorder)(nil)

// fixedClock hands out strictly increasing times one second apart.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "note-" + strconv.Itoa(n)
	}
}

// newTestStore returns a store with a long quiet period so tests drive saves
// explicitly with Flush.
func newTestStore(primary storage.Adapter, opts ...Option) *Store {
	base := []Option{
		WithQuietPeriod(time.Hour),
		WithClock(newClock().Now),
		WithIDGenerator(sequentialIDs()),
	}
	return New(primary, append(base, opts...)...)
}
