// Package session holds the authenticated user's credential and profile
// for the lifetime of a storefront session. The store is an explicit
// dependency of the API client: login populates it, logout clears it,
// nothing reads it through a global.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// User is the minimal profile kept alongside the credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type persistedSession struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Store keeps the bearer token and user profile in memory and mirrors
// them to a JSON file so a restart resumes the same session.
type Store struct {
	mu     sync.RWMutex
	path   string
	token  string
	user   *User
	logger *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load restores a persisted session from disk. A missing file is a clean
// anonymous start, not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}

	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt session file means re-login, not a crash.
		s.logger.Warn("discarding unreadable session file", "path", s.path, "error", err)
		return nil
	}

	s.mu.Lock()
	s.token = p.Token
	s.user = p.User
	s.mu.Unlock()
	return nil
}

// Login stores the credential issued by the auth service and persists it.
func (s *Store) Login(token string, user User) error {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return s.persist()
}

// Logout clears the session in memory and on disk.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) persist() error {
	s.mu.RLock()
	p := persistedSession{Token: s.token, User: s.user}
	s.mu.RUnlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
