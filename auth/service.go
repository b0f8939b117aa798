package auth

import (
	"context"
	"time"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/token"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultOperationTimeout = 3 * time.Second

// Deps holds the collaborators of the Service.
type Deps struct {
	Users    users.UserRepo       // Persisted user store
	Hasher   users.PasswordHasher // Password verification
	Tokens   *token.Codec         // Token creation and parsing
	Sessions sessions.Cache       // Principal cache keyed by SessionKey
}

// Service runs the login, logout and per-request token resolution flows.
type Service struct {
	authenticator *Authenticator
	tokens        *token.Codec
	sessions      sessions.Cache
	timeout       time.Duration
}

type ServiceOption func(*Service)

// WithOperationTimeout bounds each cache and repository call.
func WithOperationTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func NewService(deps Deps, options ...ServiceOption) (*Service, error) {
	authenticator, err := NewAuthenticator(deps.Users, deps.Hasher)
	if err != nil {
		return nil, err
	}
	if deps.Tokens == nil {
		return nil, errors.New("[NewService] token codec is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[NewService] session cache is required")
	}

	s := &Service{
		authenticator: authenticator,
		tokens:        deps.Tokens,
		sessions:      deps.Sessions,
		timeout:       DefaultOperationTimeout,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login authenticates the credentials, issues a token and caches the
// principal under its session key. A failure at any step fails the login.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	principal, err := s.authenticator.Authenticate(opCtx, username, password)
	if err != nil {
		return "", err
	}

	tok, err := s.tokens.Create(principal.User.ID)
	if err != nil {
		return "", autherrors.Wrapf(err, "create token for user %d", principal.User.ID)
	}

	if err := s.sessions.Put(opCtx, sessions.SessionKey(principal.User.ID), principal); err != nil {
		return "", autherrors.Wrapf(err, "cache session for user %d", principal.User.ID)
	}

	log.Debug().Int64("user_id", principal.User.ID).Msg("user logged in")
	return tok, nil
}

// Logout removes the principal's session entry. Logging out a session that
// is already gone succeeds.
func (s *Service) Logout(ctx context.Context, principal *sessions.LoginUser) error {
	if principal == nil {
		return autherrors.ErrSessionExpiredOrLoggedOut
	}
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sessions.Delete(opCtx, sessions.SessionKey(principal.User.ID)); err != nil {
		return autherrors.Wrapf(err, "delete session for user %d", principal.User.ID)
	}
	log.Debug().Int64("user_id", principal.User.ID).Msg("user logged out")
	return nil
}

// CurrentUser re-reads the principal's user from the store. A user removed
// since login fails with ErrSessionExpiredOrLoggedOut.
func (s *Service) CurrentUser(ctx context.Context, principal *sessions.LoginUser) (*users.User, error) {
	if principal == nil {
		return nil, autherrors.ErrSessionExpiredOrLoggedOut
	}
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.authenticator.users.GetByID(opCtx, principal.User.ID)
	if err != nil {
		if autherrors.Is(err, autherrors.ErrUserNotFound) {
			return nil, autherrors.Mark(err, autherrors.ErrSessionExpiredOrLoggedOut)
		}
		if !autherrors.Is(err, autherrors.ErrRepositoryUnavailable) {
			err = autherrors.Mark(err, autherrors.ErrRepositoryUnavailable)
		}
		return nil, autherrors.Wrapf(err, "get user %d", principal.User.ID)
	}
	return user, nil
}

// Resolve validates raw and returns the cached principal it refers to. A
// valid token without a session entry fails with
// ErrSessionExpiredOrLoggedOut.
func (s *Service) Resolve(ctx context.Context, raw string) (*sessions.LoginUser, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, autherrors.Mark(err, autherrors.ErrInvalidToken)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	principal, found, err := s.sessions.Get(opCtx, sessions.SessionKey(userID))
	if err != nil {
		return nil, autherrors.Wrapf(err, "load session for user %d", userID)
	}
	if !found {
		return nil, autherrors.ErrSessionExpiredOrLoggedOut
	}
	return principal, nil
}
