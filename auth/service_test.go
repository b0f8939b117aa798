package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrsteele09/go-session-auth/auth"
	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/memstore"
	"github.com/jrsteele09/go-session-auth/token"
	"github.com/jrsteele09/go-session-auth/users"
	fakeuserrepo "github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret       = "1234"
	testUserID       = int64(42)
	testUsername     = "alice"
	testUserPassword = "secret"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	cache    *memstore.Store
	codec    *token.Codec
	service  *auth.Service
}

// setupTestFixture creates a new test fixture with alice (id 42) stored
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	hasher := users.BcryptHasher{Cost: bcrypt.MinCost}
	ur := fakeuserrepo.NewFakeUserRepo()
	hash, err := hasher.Hash(testUserPassword)
	require.NoError(t, err)
	require.NoError(t, ur.Upsert(context.Background(), &users.User{
		ID:           testUserID,
		Username:     testUsername,
		PasswordHash: hash,
		Permissions:  []string{"test"},
	}))

	codec, err := token.NewCodec(token.NewHMACSigner(testSecret))
	require.NoError(t, err)
	cache := memstore.New(100, time.Hour)

	service, err := auth.NewService(auth.Deps{
		Users:    ur,
		Hasher:   hasher,
		Tokens:   codec,
		Sessions: cache,
	})
	require.NoError(t, err)

	return &testFixture{userRepo: ur, cache: cache, codec: codec, service: service}
}

func TestNewService_RequiresDeps(t *testing.T) {
	f := setupTestFixture(t)
	full := auth.Deps{Users: f.userRepo, Hasher: users.BcryptHasher{}, Tokens: f.codec, Sessions: f.cache}

	for name, mutate := range map[string]func(*auth.Deps){
		"users":    func(d *auth.Deps) { d.Users = nil },
		"hasher":   func(d *auth.Deps) { d.Hasher = nil },
		"tokens":   func(d *auth.Deps) { d.Tokens = nil },
		"sessions": func(d *auth.Deps) { d.Sessions = nil },
	} {
		t.Run(name, func(t *testing.T) {
			deps := full
			mutate(&deps)
			_, err := auth.NewService(deps)
			require.Error(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials cache exactly one entry", func(t *testing.T) {
		f := setupTestFixture(t)
		tok, err := f.service.Login(ctx, testUsername, testUserPassword)
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		claims, err := f.codec.Parse(tok)
		require.NoError(t, err)
		require.Equal(t, "42", claims.Subject)

		require.Equal(t, 1, f.cache.Len())
		principal, found, err := f.cache.Get(ctx, "login:42")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, testUsername, principal.User.Username)
		require.Equal(t, []string{"test"}, principal.Authorities())
	})

	t.Run("relogin overwrites the entry", func(t *testing.T) {
		f := setupTestFixture(t)
		_, err := f.service.Login(ctx, testUsername, testUserPassword)
		require.NoError(t, err)
		_, err = f.service.Login(ctx, testUsername, testUserPassword)
		require.NoError(t, err)
		require.Equal(t, 1, f.cache.Len())
	})

	for name, creds := range map[string][2]string{
		"wrong password": {testUsername, "wrong"},
		"unknown user":   {"bob", testUserPassword},
		"empty username": {"", testUserPassword},
		"empty password": {testUsername, ""},
	} {
		t.Run(name, func(t *testing.T) {
			f := setupTestFixture(t)
			tok, err := f.service.Login(ctx, creds[0], creds[1])
			require.ErrorIs(t, err, autherrors.ErrBadCredentials)
			require.Empty(t, tok)
			require.Equal(t, 0, f.cache.Len())
		})
	}

	t.Run("repository failure is not bad credentials", func(t *testing.T) {
		f := setupTestFixture(t)
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.service.Login(canceled, testUsername, testUserPassword)
		require.ErrorIs(t, err, autherrors.ErrRepositoryUnavailable)
		require.NotErrorIs(t, err, autherrors.ErrBadCredentials)
	})

	t.Run("cache failure fails the login", func(t *testing.T) {
		f := setupTestFixture(t)
		service, err := auth.NewService(auth.Deps{
			Users:    f.userRepo,
			Hasher:   users.BcryptHasher{},
			Tokens:   f.codec,
			Sessions: failingCache{},
		})
		require.NoError(t, err)

		tok, err := service.Login(ctx, testUsername, testUserPassword)
		require.ErrorIs(t, err, autherrors.ErrCacheUnavailable)
		require.Empty(t, tok)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	tok, err := f.service.Login(ctx, testUsername, testUserPassword)
	require.NoError(t, err)

	principal, err := f.service.Resolve(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, testUserID, principal.User.ID)
	require.True(t, principal.HasAnyAuthority("test"))

	t.Run("invalid token", func(t *testing.T) {
		_, err := f.service.Resolve(ctx, tok+"x")
		require.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("valid token without session", func(t *testing.T) {
		require.NoError(t, f.cache.Delete(ctx, sessions.SessionKey(testUserID)))
		_, err := f.service.Resolve(ctx, tok)
		require.ErrorIs(t, err, autherrors.ErrSessionExpiredOrLoggedOut)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		oldCodec, err := token.NewCodec(token.NewHMACSigner(testSecret), token.WithNowFunc(func() time.Time { return past }))
		require.NoError(t, err)
		old, err := oldCodec.Create(testUserID)
		require.NoError(t, err)

		_, err = f.service.Resolve(ctx, old)
		require.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	tok, err := f.service.Login(ctx, testUsername, testUserPassword)
	require.NoError(t, err)
	principal, err := f.service.Resolve(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, principal))
	require.NoError(t, f.service.Logout(ctx, principal))

	_, found, err := f.cache.Get(ctx, "login:42")
	require.NoError(t, err)
	require.False(t, found)

	_, err = f.service.Resolve(ctx, tok)
	require.ErrorIs(t, err, autherrors.ErrSessionExpiredOrLoggedOut)

	require.ErrorIs(t, f.service.Logout(ctx, nil), autherrors.ErrSessionExpiredOrLoggedOut)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	tok, err := f.service.Login(ctx, testUsername, testUserPassword)
	require.NoError(t, err)
	principal, err := f.service.Resolve(ctx, tok)
	require.NoError(t, err)

	user, err := f.service.CurrentUser(ctx, principal)
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
	require.Equal(t, testUsername, user.Username)

	t.Run("reflects store changes", func(t *testing.T) {
		renamed := *user
		renamed.Username = "alice.smith"
		require.NoError(t, f.userRepo.Upsert(ctx, &renamed))

		user, err := f.service.CurrentUser(ctx, principal)
		require.NoError(t, err)
		require.Equal(t, "alice.smith", user.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := sessions.NewLoginUser(users.User{ID: 999}, nil)
		_, err := f.service.CurrentUser(ctx, ghost)
		require.ErrorIs(t, err, autherrors.ErrSessionExpiredOrLoggedOut)
	})

	t.Run("repository failure", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.service.CurrentUser(canceled, principal)
		require.ErrorIs(t, err, autherrors.ErrRepositoryUnavailable)
	})

	t.Run("nil principal", func(t *testing.T) {
		_, err := f.service.CurrentUser(ctx, nil)
		require.ErrorIs(t, err, autherrors.ErrSessionExpiredOrLoggedOut)
	})
}

type failingCache struct{}

var errCacheDown = autherrors.Mark(errors.New("connection refused"), autherrors.ErrCacheUnavailable)

func (failingCache) Get(context.Context, string) (*sessions.LoginUser, bool, error) {
	return nil, false, errCacheDown
}

func (failingCache) Put(context.Context, string, *sessions.LoginUser) error { return errCacheDown }

func (failingCache) Delete(context.Context, string) error { return errCacheDown }
