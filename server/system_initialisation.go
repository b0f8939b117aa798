package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBootstrapUsername = "admin"
	generatedPasswordBytes   = 18
)

// InitialiseSystem makes sure the bootstrap user exists. When no password is
// configured one is generated and logged once.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	username := strings.TrimSpace(s.config.GetBootstrapUsername())
	if username == "" {
		username = DefaultBootstrapUsername
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		log.Info().Int64("user_id", existing.ID).Str("username", username).Msg("bootstrap user already exists")
		return nil
	}
	if !autherrors.Is(err, autherrors.ErrUserNotFound) {
		return fmt.Errorf("[server InitialiseSystem] failed to look up bootstrap user: %w", err)
	}

	password := s.config.GetBootstrapPassword()
	generated := password == ""
	if generated {
		if password, err = generatePassword(); err != nil {
			return fmt.Errorf("[server InitialiseSystem] failed to generate password: %w", err)
		}
	} else if err := users.ValidatePasswordStrength(password); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("weak bootstrap password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("[server InitialiseSystem] failed to hash password: %w", err)
	}

	user := &users.User{
		Username:     username,
		PasswordHash: hash,
		Permissions:  s.config.GetBootstrapPermissions(),
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return fmt.Errorf("[server InitialiseSystem] failed to create bootstrap user: %w", err)
	}

	event := log.Info().Int64("user_id", user.ID).Str("username", username).Strs("permissions", user.Permissions)
	if generated {
		event = event.Str("password", password)
	}
	event.Msg("bootstrap user created")
	return nil
}

func generatePassword() (string, error) {
	b := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
