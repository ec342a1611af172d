// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	first, err := HashPassword(salt, "correct horse battery staple")
	require.NoError(t, err)

	second, err := HashPassword(salt, "correct horse battery staple")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHashPasswordRejectsEmptyInputs(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	_, err = HashPassword("", "password")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = HashPassword(salt, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewSaltUnique(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)

	b, err := NewSalt()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordRoundTrip(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	digest, err := HashPassword(salt, "s3cret-passphrase")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(salt, "s3cret-passphrase", digest))
	assert.False(t, VerifyPassword(salt, "s3cret-passphrasE", digest))
	assert.False(t, VerifyPassword(salt, "", digest))
}

func TestVerifyPasswordDifferentSaltFails(t *testing.T) {
	saltA, err := NewSalt()
	require.NoError(t, err)

	saltB, err := NewSalt()
	require.NoError(t, err)

	digest, err := HashPassword(saltA, "same password")
	require.NoError(t, err)

	assert.False(t, VerifyPassword(saltB, "same password", digest))
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	digest, err := HashPassword(salt, "real password")
	require.NoError(t, err)

	assert.True(t, VerifyPasswordTimingSafe("real password", &salt, &digest))
	assert.False(t, VerifyPasswordTimingSafe("wrong password", &salt, &digest))

	// No user row: must return false regardless of the password.
	assert.False(t, VerifyPasswordTimingSafe("real password", nil, nil))

	empty := ""
	assert.False(t, VerifyPasswordTimingSafe("real password", &empty, &digest))
}
