// Package state provides the SQLite-backed persisted client state:
// the access token and the theme preference. It is the terminal
// equivalent of the browser's local storage; no financial data is
// ever written here.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	keyToken = "access_token"
	keyTheme = "theme"
)

// Store is the persisted client state database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the state database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the persisted access token, or "" if none is stored.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

// SetToken persists the access token.
func (s *Store) SetToken(token string) error {
	return s.set(keyToken, token)
}

// ClearToken removes the persisted access token.
func (s *Store) ClearToken() error {
	return s.delete(keyToken)
}

// Theme returns the persisted theme name, or "" if none is stored.
func (s *Store) Theme() (string, error) {
	return s.get(keyTheme)
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(name string) error {
	return s.set(keyTheme, name)
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO client_state (key, value, updated_at)
		VALUES (?, ?, ?)`, key, value, now)
	return err
}

func (s *Store) delete(key string) error {
	_, err := s.db.Exec("DELETE FROM client_state WHERE key = ?", key)
	return err
}
