package errors

import (
	"errors"
	"fmt"
)

// Common error types for the session auth server
var (
	// Authentication errors
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrUserNotFound    = errors.New("user not found")
	ErrUnauthenticated = errors.New("authentication required")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Session errors
	ErrSessionExpiredOrLoggedOut = errors.New("session expired or logged out")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Collaborator I/O errors
	ErrRepositoryUnavailable = errors.New("user repository unavailable")
	ErrCacheUnavailable      = errors.New("session cache unavailable")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternal       = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Mark attaches a sentinel to err so both remain matchable with Is.
func Mark(err, sentinel error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
