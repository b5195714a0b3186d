package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colegioapp/colegio/internal/api"
	"github.com/colegioapp/colegio/internal/log"
)

// Authenticator is the slice of the API client the store needs for login and
// token refresh. Tests substitute a fake.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*api.RefreshResponse, error)
}

// Store is the single source of truth for "who is logged in". It keeps the
// live Session in memory and mirrors it to a credentials file; the two never
// diverge for more than one store operation.
//
// The store is handed explicitly to whatever needs it rather than living in a
// package-level variable, so tests can run isolated sessions side by side.
type Store struct {
	mu       sync.Mutex
	path     string
	sess     *Session
	restored bool
	logger   *log.Logger
}

// credentialsFile is the persisted shape: the token, the refresh token and the
// serialized user record, written and deleted as a group.
type credentialsFile struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	User         api.User `json:"user"`
}

// NewStore creates a session store backed by the credentials file at path.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: log.DefaultLogger(),
	}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.Token
}

// Current returns the live session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil
	}
	copied := *s.sess
	return &copied
}

// Restored reports whether the startup restore has completed. Until then the
// authorization state is "loading" and no protected view may render.
func (s *Store) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

// Login authenticates and, on success, installs and persists the new Session.
// On failure the prior state is left untouched. The whole state change is
// applied under the lock, so no caller ever observes a half-built session.
func (s *Store) Login(ctx context.Context, auth Authenticator, username, password string) (*api.User, error) {
	resp, err := auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		User:         resp.User,
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
	}
	if err := s.persist(sess); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	s.sess = sess
	s.restored = true

	s.logger.Info("logged in", "user_id", resp.User.ID, "role", resp.User.Role)
	return &resp.User, nil
}

// Logout clears the in-memory session and deletes the credentials file.
// Idempotent: logging out with no active session is a no-op, never an error.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Restore reads the credentials file and reconstructs the Session without a
// network round trip. A missing or corrupt file, or a token that is a JWT
// already past its exp, fails open to logged-out, never to a partially
// populated session.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.restored = true }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		s.logger.Warn("credentials file is corrupt, treating session as absent", "path", s.path)
		return
	}
	if creds.Token == "" {
		return
	}
	if tokenExpired(creds.Token) {
		s.logger.Debug("stored token is expired, treating session as absent")
		return
	}

	s.sess = &Session{
		User:         creds.User,
		Token:        creds.Token,
		RefreshToken: creds.RefreshToken,
	}
}

// Refresh exchanges the stored refresh token for a fresh access token and
// persists the updated session.
func (s *Store) Refresh(ctx context.Context, auth Authenticator) error {
	s.mu.Lock()
	sess := s.sess
	s.mu.Unlock()

	if sess == nil || sess.RefreshToken == "" {
		return fmt.Errorf("no session to refresh")
	}

	resp, err := auth.RefreshToken(ctx, sess.RefreshToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		// Logged out while the exchange was in flight; drop the new token.
		return nil
	}
	updated := *s.sess
	updated.Token = resp.Token
	if err := s.persist(&updated); err != nil {
		return fmt.Errorf("save refreshed credentials: %w", err)
	}
	s.sess = &updated
	return nil
}

// persist writes the credentials file atomically: temp file in the same
// directory, then rename. Called with the lock held.
func (s *Store) persist(sess *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(credentialsFile{
		Token:        sess.Token,
		RefreshToken: sess.RefreshToken,
		User:         sess.User,
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
