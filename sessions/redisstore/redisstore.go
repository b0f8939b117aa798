package redisstore

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Cache = (*Store)(nil)

// Store keeps session entries in redis as JSON. Entries are written with
// SET EX ttl; a ttl of zero writes them without expiry.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// NewClient builds a redis client for addr.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return autherrors.Mark(autherrors.Wrapf(err, "redis ping"), autherrors.ErrCacheUnavailable)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*sessions.LoginUser, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, autherrors.Mark(autherrors.Wrapf(err, "redis get %s", key), autherrors.ErrCacheUnavailable)
	}
	principal, err := sessions.Decode(b)
	if err != nil {
		return nil, false, err
	}
	return principal, true, nil
}

func (s *Store) Put(ctx context.Context, key string, principal *sessions.LoginUser) error {
	b, err := sessions.Encode(principal)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, b, s.ttl).Err(); err != nil {
		return autherrors.Mark(autherrors.Wrapf(err, "redis set %s", key), autherrors.ErrCacheUnavailable)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return autherrors.Mark(autherrors.Wrapf(err, "redis del %s", key), autherrors.ErrCacheUnavailable)
	}
	return nil
}
