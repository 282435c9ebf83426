package cache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

const cacheFileName = "linkcheck.sqlite"

// Store remembers successfully checked web links so unchanged docs don't
// re-hit the network on every run. Failures are never recorded: a broken
// link stays visible until it is fixed.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex

	now func() time.Time
}

// DefaultPath returns the per-user cache location.
func DefaultPath() (string, error) {
	return xdg.CacheFile(filepath.Join("linkcheck", cacheFileName))
}

// Open opens the store at path, creating it when needed. Entries older than
// ttl are dropped on open. A non-positive ttl disables reuse: Record still
// writes but Fresh never reports a hit.
func Open(path string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS checked_links (
			url TEXT PRIMARY KEY,
			status INTEGER NOT NULL,
			checked_at INTEGER NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, ttl: ttl, now: time.Now}
	if err := s.purge(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Fresh reports whether url was checked successfully within the ttl.
func (s *Store) Fresh(url string) bool {
	if s == nil || s.db == nil || s.ttl <= 0 {
		return false
	}

	var checkedAt int64
	err := s.db.QueryRowContext(
		context.Background(),
		`SELECT checked_at FROM checked_links WHERE url = ?`,
		url,
	).Scan(&checkedAt)
	if err != nil {
		return false
	}
	return s.now().UTC().Sub(time.Unix(checkedAt, 0)) < s.ttl
}

// Record stores a successful check of url with the response status.
func (s *Store) Record(url string, status int) error {
	if s == nil || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(
		context.Background(),
		`INSERT INTO checked_links (url, status, checked_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			status = excluded.status,
			checked_at = excluded.checked_at`,
		url, status, s.now().UTC().Unix(),
	)
	return err
}

func (s *Store) purge() error {
	if s.ttl <= 0 {
		return nil
	}
	cutoff := s.now().UTC().Add(-s.ttl).Unix()
	_, err := s.db.ExecContext(
		context.Background(),
		`DELETE FROM checked_links WHERE checked_at < ?`, cutoff,
	)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
