package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Keys names the storage slots used for auth state. They are configurable so
// several environments can share one store file without clobbering each other.
type Keys struct {
	Token        string
	RefreshToken string
	User         string
}

// DefaultKeys returns the standard storage key names
func DefaultKeys() Keys {
	return Keys{Token: "auth_token", RefreshToken: "refresh_token", User: "user"}
}

// FileStore persists session state as a flat JSON object in a single file,
// the client-side stand-in for browser local storage. All methods are safe
// for concurrent use.
type FileStore struct {
	mu     sync.Mutex
	path   string
	keys   Keys
	logger *zap.Logger
}

// NewFileStore creates a session store backed by the given file path
func NewFileStore(path string, keys Keys, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, keys: keys, logger: logger}
}

// Token returns the persisted bearer token, or "" when none is stored
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[s.keys.Token]
}

// User returns the persisted user record JSON, or "" when none is stored
func (s *FileStore) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[s.keys.User]
}

// SetToken stores the bearer token
func (s *FileStore) SetToken(token string) error {
	return s.set(s.keys.Token, token)
}

// SetRefreshToken stores the refresh token
func (s *FileStore) SetRefreshToken(token string) error {
	return s.set(s.keys.RefreshToken, token)
}

// SetUser stores the serialized user record
func (s *FileStore) SetUser(user string) error {
	return s.set(s.keys.User, user)
}

// Clear removes the token, refresh token and user record. Entries under
// other keys are left untouched.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	delete(values, s.keys.Token)
	delete(values, s.keys.RefreshToken)
	delete(values, s.keys.User)

	s.logger.Info("cleared persisted session state")
	return s.save(values)
}

// TokenExpired reports whether the stored token carries an exp claim in the
// past. Tokens without a parseable exp claim are treated as expired, and an
// absent token is expired by definition. The signature is not verified; the
// client only needs a hint that re-authentication is due.
func (s *FileStore) TokenExpired(now time.Time) bool {
	raw := s.Token()
	if raw == "" {
		return true
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(now)
}

func (s *FileStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	values[key] = value
	return s.save(values)
}

func (s *FileStore) load() map[string]string {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		s.logger.Warn("session file is corrupt, starting empty", zap.String("path", s.path))
		return make(map[string]string)
	}
	return values
}

func (s *FileStore) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
