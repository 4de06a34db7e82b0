package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akreem/alliance/internal/domain"
)

// AuthService is the single mediator for session state (no scattered storage
// access). It performs no token verification of its own: a session counts as
// authenticated when both the bearer token and the user record are present,
// and validity stays delegated to the upstream rejecting stale tokens.
type AuthService struct {
	api      domain.ListingsAPI
	sessions domain.SessionStore
}

func NewAuthService(api domain.ListingsAPI, sessions domain.SessionStore) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

// Login exchanges credentials for an upstream bearer and opens a session.
// All upstream rejections collapse into ErrInvalidCredentials so the response
// never reveals which half of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	payload, err := s.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	return s.openSession(ctx, payload)
}

// Register creates an account upstream and opens a session from the response.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.Session, error) {
	payload, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("register: %w", err)
	}
	return s.openSession(ctx, payload)
}

func (s *AuthService) openSession(ctx context.Context, payload map[string]any) (domain.Session, error) {
	user, token := mapAuthResponse(payload)
	if token == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	sess := domain.Session{ID: uuid.NewString(), Token: token, User: user}
	if err := s.sessions.SetToken(ctx, sess.ID, token); err != nil {
		return domain.Session{}, fmt.Errorf("store token: %w", err)
	}
	if err := s.sessions.SetUser(ctx, sess.ID, user); err != nil {
		return domain.Session{}, fmt.Errorf("store user: %w", err)
	}
	log.Info().Str("username", user.Username).Bool("staff", user.IsStaff).Msg("session opened")
	return sess, nil
}

// IsAuthenticated reports whether both session halves are present. It says
// nothing about token validity.
func (s *AuthService) IsAuthenticated(ctx context.Context, sid string) bool {
	if sid == "" {
		return false
	}
	_, hasToken, err := s.sessions.Token(ctx, sid)
	if err != nil || !hasToken {
		return false
	}
	_, hasUser, err := s.sessions.User(ctx, sid)
	return err == nil && hasUser
}

// CurrentUser returns the session's user record, or false when the session
// is incomplete or missing.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (domain.User, bool) {
	if !s.IsAuthenticated(ctx, sid) {
		return domain.User{}, false
	}
	u, ok, err := s.sessions.User(ctx, sid)
	if err != nil || !ok {
		return domain.User{}, false
	}
	return u, true
}

// Token returns the upstream bearer for an authenticated session.
func (s *AuthService) Token(ctx context.Context, sid string) (string, bool) {
	if !s.IsAuthenticated(ctx, sid) {
		return "", false
	}
	t, ok, err := s.sessions.Token(ctx, sid)
	if err != nil || !ok {
		return "", false
	}
	return t, true
}

// Logout clears both session halves. Clearing an unknown session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Clear(ctx, sid)
}
