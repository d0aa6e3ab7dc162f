// Package auth holds the client-side session: the user snapshot and token
// pair produced by the auth facade. Operations follow a boolean contract;
// transport failures and semantic rejections both read as false, and no
// error crosses this boundary.
//
// The session moves anonymous -> authenticated on a successful login or
// registration, and back to anonymous on logout or on a refresh failure.
package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"otica-store/internal/domain"
	"otica-store/internal/service"
	"otica-store/internal/storage"
)

// DefaultNamespace is the storage key the session persists under.
const DefaultNamespace = "otica-auth-storage"

// persistedSession is the durable subset of session state. The loading flag
// is transient and never stored.
type persistedSession struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"token"`
	RefreshToken    string       `json:"refreshToken"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Session is the client-held auth state. Safe for concurrent use.
type Session struct {
	api       *service.AuthService
	storage   storage.Store
	namespace string
	logger    *zap.Logger

	mu              sync.Mutex
	user            *domain.User
	token           string
	refreshToken    string
	isAuthenticated bool
	isLoading       bool
}

// NewSession restores any session persisted under namespace; otherwise the
// session starts anonymous.
func NewSession(ctx context.Context, api *service.AuthService, st storage.Store, namespace string, logger *zap.Logger) (*Session, error) {
	s := &Session{
		api:       api,
		storage:   st,
		namespace: namespace,
		logger:    logger,
	}

	var persisted persistedSession
	err := st.Load(ctx, namespace, &persisted)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}
	if err == nil {
		s.user = persisted.User
		s.token = persisted.Token
		s.refreshToken = persisted.RefreshToken
		s.isAuthenticated = persisted.IsAuthenticated
	}
	return s, nil
}

// Login authenticates and, on success, installs the session. Any failure
// leaves the session untouched.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", zap.Error(err))
		return false
	}
	if !resp.Success {
		s.logger.Debug("login rejected", zap.String("error", resp.Error))
		return false
	}

	s.install(ctx, resp.Data)
	return true
}

// Register creates an account and, on success, installs the session.
func (s *Session) Register(ctx context.Context, data service.RegisterData) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Register(ctx, data)
	if err != nil {
		s.logger.Warn("registration failed", zap.Error(err))
		return false
	}
	if !resp.Success {
		s.logger.Debug("registration rejected", zap.String("error", resp.Error))
		return false
	}

	s.install(ctx, resp.Data)
	return true
}

// Logout invalidates the refresh token best-effort and unconditionally
// clears the session.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.mu.Unlock()

	if refreshToken != "" {
		if _, err := s.api.Logout(ctx, refreshToken); err != nil {
			s.logger.Debug("logout invalidation failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.refreshToken = ""
	s.isAuthenticated = false
	s.isLoading = false
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// RefreshAuth exchanges the held refresh token for a new access token.
// Without a refresh token it is a no-op returning false. A rejected refresh
// is terminal: the session cascades into a full logout.
func (s *Session) RefreshAuth(ctx context.Context) bool {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.mu.Unlock()

	if refreshToken == "" {
		return false
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Refresh(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("token refresh failed", zap.Error(err))
		s.Logout(ctx)
		return false
	}
	if !resp.Success {
		s.logger.Debug("refresh token rejected", zap.String("error", resp.Error))
		s.Logout(ctx)
		return false
	}

	s.mu.Lock()
	s.token = resp.Data.Token
	s.persistLocked(ctx)
	s.mu.Unlock()
	return true
}

// UpdateProfile merges updates into the server-side account and replaces the
// local snapshot on success. Requires an authenticated session.
func (s *Session) UpdateProfile(ctx context.Context, update domain.UserUpdate) bool {
	s.mu.Lock()
	token := s.token
	hasUser := s.user != nil
	s.mu.Unlock()

	if token == "" || !hasUser {
		return false
	}

	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.UpdateProfile(ctx, token, update)
	if err != nil {
		s.logger.Warn("profile update failed", zap.Error(err))
		return false
	}
	if !resp.Success {
		s.logger.Debug("profile update rejected", zap.String("error", resp.Error))
		return false
	}

	s.mu.Lock()
	user := resp.Data
	s.user = &user
	s.persistLocked(ctx)
	s.mu.Unlock()
	return true
}

// User returns a copy of the current user snapshot, or nil when anonymous.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current access token.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// IsAuthenticated reports whether the session holds a logged-in user.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// IsLoading reports whether an auth operation is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

func (s *Session) install(ctx context.Context, auth domain.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := auth.User
	s.user = &user
	s.token = auth.Token
	s.refreshToken = auth.RefreshToken
	s.isAuthenticated = true
	s.persistLocked(ctx)
}

func (s *Session) setLoading(loading bool) {
	s.mu.Lock()
	s.isLoading = loading
	s.mu.Unlock()
}

// persistLocked writes the durable subset. Callers hold s.mu. Persistence
// failures are logged, not surfaced: the in-memory session stays usable.
func (s *Session) persistLocked(ctx context.Context) {
	persisted := persistedSession{
		User:            s.user,
		Token:           s.token,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.isAuthenticated,
	}
	if err := s.storage.Save(ctx, s.namespace, &persisted); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
	}
}
