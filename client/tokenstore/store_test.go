package tokenstore

import (
	"path/filepath"
	"sync"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if tok, err := s.Token(); err != nil || tok != "" {
		t.Fatalf("empty store: token=%q err=%v", tok, err)
	}

	var (
		mu     sync.Mutex
		events []Event
	)
	unsubscribe := s.Subscribe(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	if err := s.SetToken("T1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetToken("T2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if tok, _ := s.Token(); tok != "T2" {
		t.Fatalf("token = %q, want T2", tok)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear on empty: %v", err)
	}
	if tok, _ := s.Token(); tok != "" {
		t.Fatalf("token after clear = %q", tok)
	}

	unsubscribe()
	unsubscribe()
	_ = s.SetToken("T3")

	mu.Lock()
	defer mu.Unlock()
	want := []string{"T1", "T2", "", ""}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want tokens %v", events, want)
	}
	for i, w := range want {
		if events[i].Token != w {
			t.Fatalf("event %d = %q, want %q", i, events[i].Token, w)
		}
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	t.Parallel()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	s1, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s1.SetToken("persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = s1.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if tok, _ := s2.Token(); tok != "persisted" {
		t.Fatalf("token = %q after reopen", tok)
	}
}

func TestSubscribe_CallbackMayUnsubscribeItself(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	calls := 0
	var unsub func()
	unsub = m.Subscribe(func(Event) {
		calls++
		unsub()
	})
	_ = m.SetToken("a")
	_ = m.SetToken("b")
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if noop := m.Subscribe(nil); noop == nil {
		t.Fatal("nil subscriber must still return an unsubscribe func")
	}
}
