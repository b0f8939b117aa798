package sessions

import (
	"context"
	"encoding/json"
	"strconv"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
)

const keyPrefix = "login:"

// SessionKey returns the cache key for a user's session entry.
func SessionKey(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Cache maps session keys to principals. A missing entry is reported as
// found == false with a nil error. I/O failures match
// internal/errors.ErrCacheUnavailable.
type Cache interface {
	Get(ctx context.Context, key string) (*LoginUser, bool, error)
	// Put is an unconditional upsert.
	Put(ctx context.Context, key string, principal *LoginUser) error
	// Delete of an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Encode serializes a principal for storage.
func Encode(principal *LoginUser) ([]byte, error) {
	b, err := json.Marshal(principal)
	if err != nil {
		return nil, autherrors.Wrapf(err, "encode principal")
	}
	return b, nil
}

// Decode restores a principal, rebuilding its authority set.
func Decode(data []byte) (*LoginUser, error) {
	var lu LoginUser
	if err := json.Unmarshal(data, &lu); err != nil {
		return nil, autherrors.Mark(autherrors.Wrapf(err, "decode principal"), autherrors.ErrCacheUnavailable)
	}
	return &lu, nil
}
