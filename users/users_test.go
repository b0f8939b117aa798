package users_test

import (
	"testing"

	"github.com/jrsteele09/go-session-auth/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := users.BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)
	require.True(t, hasher.Verify("secret", hash))
	require.False(t, hasher.Verify("Secret", hash))
	require.False(t, hasher.Verify("secret", "not-a-hash"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost, cost)
}

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, users.ValidatePasswordStrength("Passw0rdOK"))
	for _, weak := range []string{"Sh0rt", "alllower1", "ALLUPPER1", "NoDigitsHere"} {
		require.Error(t, users.ValidatePasswordStrength(weak), weak)
	}
}
