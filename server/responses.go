package server

import (
	"encoding/json"
	"net/http"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/rs/zerolog/log"
)

// ResponseResult is the JSON envelope for every API response. Code mirrors
// the HTTP status.
type ResponseResult struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	msgLoginSucceeded  = "login succeeded"
	msgLogoutSucceeded = "logout succeeded"
	msgOK              = "ok"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeResult(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, ResponseResult{Code: status, Message: msg, Data: data})
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// writeError maps err onto a status and a fixed message. Error text is
// never sent to the client.
func writeError(w http.ResponseWriter, err error) {
	status, msg := statusForError(err)
	writeResult(w, status, msg, nil)
}

func statusForError(err error) (int, string) {
	switch {
	case autherrors.Is(err, autherrors.ErrBadCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case autherrors.Is(err, autherrors.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case autherrors.Is(err, autherrors.ErrSessionExpiredOrLoggedOut):
		return http.StatusUnauthorized, "session expired or logged out"
	case autherrors.Is(err, autherrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case autherrors.Is(err, autherrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case autherrors.Is(err, autherrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case autherrors.Is(err, autherrors.ErrCacheUnavailable), autherrors.Is(err, autherrors.ErrRepositoryUnavailable):
		return http.StatusServiceUnavailable, "authentication service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
