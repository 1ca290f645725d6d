package apiclient

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// TokenKey is the well-known storage key the session token lives under; the
// same key the web client uses in localStorage.
const TokenKey = "kevii-gym-token"

// TokenStore persists the session token. Presence of a token is the
// authentication gate: route guards and the transport both read it from
// here instead of any ambient global.
type TokenStore interface {
	Token() (string, error) // "" when logged out
	Save(token string) error
	Clear() error
}

// memoryTokenStore is the in-process default, used when no store is injected.
type memoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *memoryTokenStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileTokenStore keeps the token in a small JSON file under TokenKey,
// mirroring the browser's localStorage slot for CLI use.
type FileTokenStore struct {
	Path string

	mu sync.Mutex
}

func (s *FileTokenStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return "", err
	}
	return values[TokenKey], nil
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(map[string]string{TokenKey: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
