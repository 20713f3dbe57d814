// Package board holds the in-memory source of truth for the sticky-note
// board. Every change goes through a Store method, which notifies subscribers
// synchronously and schedules a debounced save to the storage tiers.
package board

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/storage"
)

// DefaultQuietPeriod is how long the store waits after the last mutation
// before it writes the collection.
const DefaultQuietPeriod = time.Second

// Store owns the note collection and the loading flag. The zero value is not
// usable; construct with New.
type Store struct {
	chain  storage.Chain
	logger *zap.Logger
	now    func() time.Time
	rng    *rand.Rand
	newID  func() string
	quiet  time.Duration

	mu      sync.Mutex
	notes   []note.Note
	loading bool

	// debounce state, guarded by mu
	timer   *time.Timer
	gen     uint64
	pending bool
	closed  bool

	// serialises writes so two saves never interleave
	saveMu sync.Mutex

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(Event)
}

// Option configures a Store.
type Option func(*Store)

// WithQuietPeriod sets the debounce window.
func WithQuietPeriod(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.quiet = d
		}
	}
}

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand sets the random source used for initial note placement.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithIDGenerator overrides how note ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithFallback sets the secondary tier used when the primary fails.
func WithFallback(b storage.Backend) Option {
	return func(s *Store) {
		s.chain.Fallback = b
	}
}

// New creates an empty store persisting to primary.
func New(primary storage.Adapter, opts ...Option) *Store {
	s := &Store{
		chain:  storage.Chain{Primary: primary},
		logger: zap.NewNop(),
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:  uuid.NewString,
		quiet:  DefaultQuietPeriod,
		notes:  make([]note.Note, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notes returns a copy of the collection in insertion order.
func (s *Store) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.notes)
}

// Get returns a copy of the note with the given id.
func (s *Store) Get(id string) (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return note.Note{}, false
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Loading reports whether LoadFromStorage is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) indexLocked(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) randomPositionLocked() note.Position {
	return note.RandomPosition(s.rng)
}

func cloneNotes(list []note.Note) []note.Note {
	out := make([]note.Note, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}
