package tokenstore

import "sync"

// Memory keeps the token in process memory. The zero value is ready to use.
type Memory struct {
	mu    sync.RWMutex
	token string
	subs  subscribers
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

// Token returns the stored token, or "".
func (m *Memory) Token() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

// SetToken replaces the token and notifies subscribers.
func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.subs.notify(Event{Token: token})
	return nil
}

// Clear removes the token and notifies subscribers, even when none was set.
func (m *Memory) Clear() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	m.subs.notify(Event{})
	return nil
}

// Subscribe registers fn for change events.
func (m *Memory) Subscribe(fn func(Event)) func() { return m.subs.add(fn) }
