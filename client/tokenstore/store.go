// Package tokenstore is the single access point for the bearer token.
// Every read, write, and clear of the access token goes through a Store.
package tokenstore

import "sync"

// Key is the fixed name the access token is stored under.
const Key = "accessToken"

// Event is delivered to subscribers after each successful write or clear.
// Token is empty after a clear.
type Event struct {
	Token string
}

// Store reads, writes, and clears the access token.
type Store interface {
	// Token returns the stored token, or "" when none is stored.
	Token() (string, error)
	SetToken(token string) error
	Clear() error
	// Subscribe registers fn for change events. The returned func removes it.
	Subscribe(fn func(Event)) (unsubscribe func())
}

// subscribers fans events out synchronously to registered callbacks.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Event)
}

func (s *subscribers) add(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.fns == nil {
		s.fns = make(map[int]func(Event))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

// notify copies the callback set so a callback may unsubscribe itself.
func (s *subscribers) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
