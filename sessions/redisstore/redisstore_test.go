package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/redisstore"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	mr    *miniredis.Miniredis
	store *redisstore.Store
}

func setupTestFixture(t *testing.T, ttl time.Duration) *testFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisstore.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })
	return &testFixture{mr: mr, store: redisstore.New(client, ttl)}
}

func alice() *sessions.LoginUser {
	return sessions.NewLoginUser(users.User{ID: 42, Username: "alice"}, []string{"test"})
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t, 0)
	key := sessions.SessionKey(42)

	require.NoError(t, f.store.Ping(ctx))

	_, found, err := f.store.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, f.store.Put(ctx, key, alice()))
	require.True(t, f.mr.Exists("login:42"))
	require.Equal(t, time.Duration(0), f.mr.TTL("login:42"))

	got, found, err := f.store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(42), got.User.ID)
	require.Equal(t, []string{"test"}, got.Authorities())

	require.NoError(t, f.store.Delete(ctx, key))
	require.NoError(t, f.store.Delete(ctx, key))
	require.False(t, f.mr.Exists("login:42"))
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t, time.Hour)

	require.NoError(t, f.store.Put(ctx, "login:42", alice()))
	require.Equal(t, time.Hour, f.mr.TTL("login:42"))

	f.mr.FastForward(59 * time.Minute)
	_, found, err := f.store.Get(ctx, "login:42")
	require.NoError(t, err)
	require.True(t, found)

	f.mr.FastForward(2 * time.Minute)
	_, found, err = f.store.Get(ctx, "login:42")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStore_CorruptEntry(t *testing.T) {
	f := setupTestFixture(t, 0)
	require.NoError(t, f.mr.Set("login:42", "{not json"))

	_, _, err := f.store.Get(context.Background(), "login:42")
	require.ErrorIs(t, err, autherrors.ErrCacheUnavailable)
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t, 0)
	f.mr.Close()

	_, _, err := f.store.Get(ctx, "login:42")
	require.ErrorIs(t, err, autherrors.ErrCacheUnavailable)
	require.ErrorIs(t, f.store.Put(ctx, "login:42", alice()), autherrors.ErrCacheUnavailable)
	require.ErrorIs(t, f.store.Delete(ctx, "login:42"), autherrors.ErrCacheUnavailable)
	require.ErrorIs(t, f.store.Ping(ctx), autherrors.ErrCacheUnavailable)
}
