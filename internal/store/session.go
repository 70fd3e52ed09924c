package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// SessionStore owns authentication identity and tokens. The transport
// layer and other stores read it; nothing mutates it except through its
// action surface. Exactly one instance exists per running client.
//
// Two states: anonymous and authenticated. Login is the only way in,
// Logout the only way out; the partial setters are no-ops while
// anonymous so they can never forge an authenticated state.
type SessionStore struct {
	notifier

	vault  *Vault
	auth   domain.AuthRepository
	logger *slog.Logger

	mu       sync.RWMutex
	profile  *domain.Profile
	access   string
	refresh  string
	onLogout []func()
}

// NewSessionStore restores any persisted session from the vault. The
// presence of a stored access token is what makes the process start
// authenticated; everything else is best-effort decoration.
func NewSessionStore(vault *Vault, auth domain.AuthRepository, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SessionStore{vault: vault, auth: auth, logger: logger}
	s.restore()
	return s
}

func (s *SessionStore) restore() {
	access, ok := s.vault.get(keyAccessToken)
	if !ok || len(access) == 0 {
		return
	}
	s.access = string(access)

	if refresh, ok := s.vault.get(keyRefreshToken); ok {
		s.refresh = string(refresh)
	}
	if data, ok := s.vault.get(keyProfile); ok {
		var profile domain.Profile
		if err := json.Unmarshal(data, &profile); err == nil {
			s.profile = &profile
		} else {
			s.logger.Warn("discarding unreadable persisted profile", "error", err)
		}
	}

	s.logger.Info("session restored", "userID", s.userIDLocked())
}

// Login overwrites the whole session atomically and persists it so a
// restart resumes authenticated. The caller is responsible for having
// validated the credentials against the backend first; there is no
// failure path here.
func (s *SessionStore) Login(profile domain.Profile, tokens domain.Tokens) {
	s.mu.Lock()
	s.profile = &profile
	s.access = tokens.Access
	s.refresh = tokens.Refresh

	s.vault.put(keyAccessToken, []byte(tokens.Access))
	s.vault.put(keyRefreshToken, []byte(tokens.Refresh))
	if data, err := json.Marshal(profile); err == nil {
		s.vault.put(keyProfile, data)
	}
	s.mu.Unlock()

	s.logger.Info("logged in", "userID", profile.ID)
	s.publish()
}

// Logout notifies the backend best-effort, then unconditionally clears
// local state, durable storage and dependent stores. A failed server
// call is logged and swallowed: the client always ends up logged out.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.RLock()
	refresh := s.refresh
	wasAuthenticated := s.access != ""
	s.mu.RUnlock()

	if wasAuthenticated && refresh != "" && s.auth != nil {
		if err := s.auth.Logout(ctx, refresh); err != nil {
			s.logger.Warn("server-side logout failed", "error", err)
		}
	}

	s.mu.Lock()
	s.profile = nil
	s.access = ""
	s.refresh = ""
	s.vault.clear()
	dependents := make([]func(), len(s.onLogout))
	copy(dependents, s.onLogout)
	s.mu.Unlock()

	for _, clear := range dependents {
		clear()
	}

	s.logger.Info("logged out")
	s.publish()
}

// UpdateToken replaces the access token after a refresh exchange.
// A no-op while anonymous.
func (s *SessionStore) UpdateToken(access string) {
	s.mu.Lock()
	if s.access == "" || access == "" {
		s.mu.Unlock()
		return
	}
	s.access = access
	s.vault.put(keyAccessToken, []byte(access))
	s.mu.Unlock()

	s.publish()
}

// SetProfile replaces the cached profile after a profile edit.
// A no-op while anonymous.
func (s *SessionStore) SetProfile(profile domain.Profile) {
	s.mu.Lock()
	if s.access == "" {
		s.mu.Unlock()
		return
	}
	s.profile = &profile
	if data, err := json.Marshal(profile); err == nil {
		s.vault.put(keyProfile, data)
	}
	s.mu.Unlock()

	s.publish()
}

// SetAuthRepository installs the backend used for server-side logout.
// Wired after construction: the API client that implements it reads its
// tokens from this store.
func (s *SessionStore) SetAuthRepository(auth domain.AuthRepository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// OnLogout registers a dependent store's clear hook, run after every
// logout. Registration order is invocation order.
func (s *SessionStore) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// IsAuthenticated reports whether a session is active. True exactly when
// an access token is held.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

// AccessToken returns the current access token ("" while anonymous).
func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh token ("" while anonymous).
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// Profile returns a copy of the cached profile, or nil while anonymous
// or before the profile has been fetched.
func (s *SessionStore) Profile() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// UserID returns the authenticated user's id, 0 while anonymous.
func (s *SessionStore) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userIDLocked()
}

func (s *SessionStore) userIDLocked() int64 {
	if s.profile == nil {
		return 0
	}
	return s.profile.ID
}
