package sessions

import (
	"encoding/json"
	"slices"

	"github.com/jrsteele09/go-session-auth/users"
)

// LoginUser is the authenticated principal held server-side for an active
// session. The authority set is derived from Permissions when the value is
// built and is never serialized; decoding rebuilds it.
type LoginUser struct {
	User        users.User `json:"user"`
	Permissions []string   `json:"permissions"`

	authorities []string
}

// NewLoginUser builds a principal for user. One authority is derived per
// permission, in order, duplicates kept.
func NewLoginUser(user users.User, permissions []string) *LoginUser {
	lu := &LoginUser{
		User:        user,
		Permissions: slices.Clone(permissions),
	}
	lu.authorities = deriveAuthorities(lu.Permissions)
	return lu
}

func deriveAuthorities(permissions []string) []string {
	authorities := make([]string, 0, len(permissions))
	authorities = append(authorities, permissions...)
	return authorities
}

// Authorities returns a copy of the authority set.
func (l *LoginUser) Authorities() []string {
	return slices.Clone(l.authorities)
}

// HasAnyAuthority reports whether the principal holds at least one of
// authorities.
func (l *LoginUser) HasAnyAuthority(authorities ...string) bool {
	for _, a := range authorities {
		if slices.Contains(l.authorities, a) {
			return true
		}
	}
	return false
}

func (l *LoginUser) UnmarshalJSON(data []byte) error {
	type wire LoginUser
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = LoginUser(w)
	l.authorities = deriveAuthorities(l.Permissions)
	return nil
}
