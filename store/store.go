package store // import "github.com/homeshelf/homeshelf/store"

import (
	"database/sql"
	"sync"

	"github.com/homeshelf/homeshelf/store/db"
)

// Storage keys of the two persisted collections.
const (
	KeyBooks = "books"
	KeyLoans = "loans"
)

// Store is the persistence boundary: it reads and writes whole JSON blobs
// under fixed keys and knows nothing about the record types inside them.
type Store struct {
	db   *db.DB
	lock sync.Mutex
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadCollection returns the raw JSON blob stored under key. The second
// return value is false when nothing has been stored yet.
func (s *Store) LoadCollection(key string) ([]byte, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// SaveCollection replaces the blob stored under key. Writes are
// last-write-wins, there is no partial-write recovery.
func (s *Store) SaveCollection(key string, raw []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	stmt := `
    INSERT INTO kv (key, value) VALUES (?, ?)
    ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `
	_, err := s.db.Exec(stmt, key, string(raw))
	return err
}
