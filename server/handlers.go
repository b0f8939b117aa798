package server

import (
	"encoding/json"
	"net/http"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/internal/utils"
	"github.com/rs/zerolog/log"
)

const maxLoginBodyBytes = 1 << 20

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// UserInfoResponse describes the current principal.
type UserInfoResponse struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, msgOK)
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes))
		if err := dec.Decode(&req); err != nil {
			log.Debug().Err(err).Msg("malformed login body")
			writeError(w, autherrors.ErrInvalidRequest)
			return
		}

		username := utils.Value(req.Username)
		tok, err := s.auth.Login(r.Context(), username, utils.Value(req.Password))
		if err != nil {
			if autherrors.Is(err, autherrors.ErrBadCredentials) {
				log.Debug().Str("username", username).Msg("login rejected")
			} else {
				log.Error().Err(err).Str("username", username).Msg("login failed")
			}
			writeError(w, err)
			return
		}

		writeResult(w, http.StatusOK, msgLoginSucceeded, LoginResponse{Token: tok})
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, autherrors.ErrUnauthenticated)
			return
		}
		if err := s.auth.Logout(r.Context(), principal); err != nil {
			log.Error().Err(err).Int64("user_id", principal.User.ID).Msg("logout failed")
			writeError(w, err)
			return
		}
		writeResult(w, http.StatusOK, msgLogoutSucceeded, nil)
	}
}

func (s *Server) HelloHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "hello")
	}
}

func (s *Server) UserInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, autherrors.ErrUnauthenticated)
			return
		}
		user, err := s.auth.CurrentUser(r.Context(), principal)
		if err != nil {
			log.Error().Err(err).Int64("user_id", principal.User.ID).Msg("user info failed")
			writeError(w, err)
			return
		}
		// Permissions are the ones granted to this session at login
		perms := principal.Permissions
		if perms == nil {
			perms = []string{}
		}
		writeResult(w, http.StatusOK, msgOK, UserInfoResponse{
			ID:          user.ID,
			Username:    user.Username,
			Permissions: perms,
		})
	}
}
