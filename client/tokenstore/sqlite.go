package tokenstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS Session (
    Key   TEXT PRIMARY KEY,
    Value TEXT NOT NULL
);`

// SQLite persists the token in a single key/value table so it survives
// process restarts.
type SQLite struct {
	db   *sql.DB
	mu   sync.Mutex
	subs subscribers
}

// OpenSQLite opens (or creates) the session database at path. An empty path
// uses DBPath.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		p, err := DBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newSQLiteWithDB(db)
}

func newSQLiteWithDB(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Token reads the persisted token, or "" when none is stored.
func (s *SQLite) Token() (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT Value FROM Session WHERE Key = ?`, Key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return v, nil
}

// SetToken upserts the token row and notifies subscribers.
func (s *SQLite) SetToken(token string) error {
	s.mu.Lock()
	_, err := s.db.Exec(`INSERT INTO Session (Key, Value) VALUES (?, ?)
        ON CONFLICT(Key) DO UPDATE SET Value = excluded.Value`, Key, token)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	s.subs.notify(Event{Token: token})
	return nil
}

// Clear deletes the token row and notifies subscribers.
func (s *SQLite) Clear() error {
	s.mu.Lock()
	_, err := s.db.Exec(`DELETE FROM Session WHERE Key = ?`, Key)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.subs.notify(Event{})
	return nil
}

// Subscribe registers fn for change events.
func (s *SQLite) Subscribe(fn func(Event)) func() { return s.subs.add(fn) }

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }
