package memstore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
)

const DefaultSize = 10000

var _ sessions.Cache = (*Store)(nil)

// Store is an in-process session cache backed by a size-bounded LRU whose
// entries expire after ttl. A ttl of zero keeps entries until evicted by
// size. Principals are stored encoded so callers never share state.
type Store struct {
	lru *expirable.LRU[string, []byte]
}

func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *Store) Get(ctx context.Context, key string) (*sessions.LoginUser, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, autherrors.Mark(err, autherrors.ErrCacheUnavailable)
	}
	b, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	principal, err := sessions.Decode(b)
	if err != nil {
		return nil, false, err
	}
	return principal, true, nil
}

func (s *Store) Put(ctx context.Context, key string, principal *sessions.LoginUser) error {
	if err := ctx.Err(); err != nil {
		return autherrors.Mark(err, autherrors.ErrCacheUnavailable)
	}
	b, err := sessions.Encode(principal)
	if err != nil {
		return err
	}
	s.lru.Add(key, b)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return autherrors.Mark(err, autherrors.ErrCacheUnavailable)
	}
	s.lru.Remove(key)
	return nil
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	return s.lru.Len()
}
