package memstore_test

import (
	"context"
	"testing"
	"time"

	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/memstore"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/stretchr/testify/require"
)

func alice() *sessions.LoginUser {
	return sessions.NewLoginUser(users.User{ID: 42, Username: "alice"}, []string{"test"})
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(10, 0)
	key := sessions.SessionKey(42)

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Put(ctx, key, alice()))
	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "alice", got.User.Username)
	require.True(t, got.HasAnyAuthority("test"))

	t.Run("put overwrites", func(t *testing.T) {
		updated := sessions.NewLoginUser(users.User{ID: 42, Username: "alice"}, []string{"admin"})
		require.NoError(t, store.Put(ctx, key, updated))
		got, _, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, []string{"admin"}, got.Authorities())
		require.Equal(t, 1, store.Len())
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))
		require.NoError(t, store.Delete(ctx, key))
		_, found, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.False(t, found)
	})
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(10, 20*time.Millisecond)
	require.NoError(t, store.Put(ctx, "login:1", alice()))

	require.Eventually(t, func() bool {
		_, found, err := store.Get(ctx, "login:1")
		return err == nil && !found
	}, time.Second, 10*time.Millisecond)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := memstore.New(10, 0)

	_, _, err := store.Get(ctx, "login:1")
	require.ErrorIs(t, err, autherrors.ErrCacheUnavailable)
	require.ErrorIs(t, store.Put(ctx, "login:1", alice()), autherrors.ErrCacheUnavailable)
	require.ErrorIs(t, store.Delete(ctx, "login:1"), autherrors.ErrCacheUnavailable)
}
