package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"folio/internal/model"
)

// SessionStore persists the bearer token and cached user record between
// requests. The token and user are always written and cleared together.
type SessionStore interface {
	Token() string
	User() *model.User
	Save(token string, user *model.User) error
	Clear() error
}

// MemorySession keeps the session in process memory. Used in tests and in
// callers that manage persistence themselves.
type MemorySession struct {
	mu    sync.RWMutex
	token string
	user  *model.User
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *MemorySession) Save(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	return nil
}

func (s *MemorySession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}

// fileSession is the on-disk session format.
type fileSession struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user,omitempty"`
}

// FileSession persists the session as a JSON file (0600), the CLI analogue of
// browser-local storage.
type FileSession struct {
	mu   sync.Mutex
	path string
}

func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// DefaultSessionPath returns the per-user session file location.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "folio", "session.json"), nil
}

func (s *FileSession) load() fileSession {
	var fs fileSession
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fs
	}
	_ = json.Unmarshal(data, &fs)
	return fs
}

func (s *FileSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

func (s *FileSession) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().User
}

func (s *FileSession) Save(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.Marshal(fileSession{AccessToken: token, User: user})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
