package auth

import (
	"context"
	"strings"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/pkg/errors"
)

// Authenticator validates a username/password pair against the user store.
type Authenticator struct {
	users  users.UserRepo
	hasher users.PasswordHasher
}

func NewAuthenticator(userRepo users.UserRepo, hasher users.PasswordHasher) (*Authenticator, error) {
	if userRepo == nil {
		return nil, errors.New("[NewAuthenticator] user repo is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewAuthenticator] password hasher is required")
	}
	return &Authenticator{users: userRepo, hasher: hasher}, nil
}

// Authenticate returns the principal for username when password matches.
// Unknown users and wrong passwords both fail with ErrBadCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*sessions.LoginUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, autherrors.ErrBadCredentials
	}

	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if autherrors.Is(err, autherrors.ErrUserNotFound) {
			return nil, autherrors.ErrBadCredentials
		}
		if !autherrors.Is(err, autherrors.ErrRepositoryUnavailable) {
			err = autherrors.Mark(err, autherrors.ErrRepositoryUnavailable)
		}
		return nil, autherrors.Wrapf(err, "find user %q", username)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, autherrors.ErrBadCredentials
	}
	return sessions.NewLoginUser(*user, user.Permissions), nil
}
