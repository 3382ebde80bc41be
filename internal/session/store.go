// Package session persists the bearer credential issued at login. The store
// is the single source of truth for authentication state: both the console
// and the CLI commands read it at call time, and startup treats a stored
// token as an authenticated session.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Session is the durable credential record. The JSON keys mirror the
// storage keys the panel has always used.
type Session struct {
	Token     string `json:"token"`
	UserLogin string `json:"user_login"`
}

// Store reads and writes the session file. Safe for concurrent use.
type Store struct {
	filePath string
	mu       sync.Mutex
}

// NewStore creates a store backed by ~/.panelctl/session.json.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(home, ".panelctl", "session.json")), nil
}

// NewStoreAt creates a store backed by an explicit path. Used by tests.
func NewStoreAt(path string) *Store {
	return &Store{filePath: path}
}

// Current returns the stored session, or nil when none exists. A session
// without a token counts as absent.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil
	}
	if sess.Token == "" {
		return nil
	}
	return &sess
}

// Save persists the session with owner-only permissions.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Clear removes the session file. Logout calls this; a missing file is not
// an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
