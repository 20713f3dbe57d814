package board

// EventType enumerates store change notifications.
type EventType string

const (
	// EventCreate indicates a note was added.
	EventCreate EventType = "create"
	// EventUpdate indicates a note changed.
	EventUpdate EventType = "update"
	// EventDelete indicates a note was removed.
	EventDelete EventType = "delete"
	// EventArrange indicates every note was repositioned.
	EventArrange EventType = "arrange"
	// EventReload indicates the collection was replaced from storage.
	EventReload EventType = "reload"
	// EventLoading indicates the loading flag changed.
	EventLoading EventType = "loading"
)

// Event describes a state change. ID is empty for collection-wide events.
type Event struct {
	Type    EventType `json:"type"`
	ID      string    `json:"id,omitempty"`
	Loading bool      `json:"loading,omitempty"`
}

// Subscribe registers fn to be called synchronously after every state change,
// on the goroutine that made the change and after the store lock is released.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	subs := append([]subscriber(nil), s.subs...)
	s.subMu.Unlock()
	for _, sub := range subs {
		sub.fn(ev)
	}
}
