// AngelaMos | 2026
// token_test.go

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/copperline/internal/config"
	"github.com/copperline/copperline/internal/core"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:      "test-secret-at-least-32-characters-long",
		TokenExpire: time.Hour,
		Issuer:      "copperline",
		Audience:    "copperline-api",
	}
}

func testSessionClaims() SessionClaims {
	return SessionClaims{
		UserID:    "0c7f94a2-1f1e-4f6d-9f7a-6f1a2b3c4d5e",
		Email:     "ana@example.com",
		Name:      "Ana Torres",
		Role:      "project_manager",
		TenantID:  7,
		TenantKey: "OPS",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	token, err := manager.CreateToken(testSessionClaims())
	require.NoError(t, err)

	// Compact serialization: header.payload.signature
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := manager.VerifyToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "0c7f94a2-1f1e-4f6d-9f7a-6f1a2b3c4d5e", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana Torres", claims.Name)
	assert.Equal(t, "project_manager", claims.Role)
	assert.Equal(t, int64(7), claims.TenantID)
	assert.Equal(t, "OPS", claims.TenantKey)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyTokenTamperedSignature(t *testing.T) {
	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	token, err := manager.CreateToken(testSessionClaims())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = manager.VerifyToken(context.Background(), tampered)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenTamperedPayload(t *testing.T) {
	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	token, err := manager.CreateToken(testSessionClaims())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Swap the payload wholesale; the signature no longer matches.
	other, err := manager.CreateToken(SessionClaims{
		UserID:    "another-user",
		Email:     "eve@example.com",
		Name:      "Eve",
		Role:      "administrator",
		TenantID:  1,
		TenantKey: "OPS",
	})
	require.NoError(t, err)

	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = manager.VerifyToken(context.Background(), forged)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpire = -time.Minute

	manager, err := NewTokenManager(cfg)
	require.NoError(t, err)

	token, err := manager.CreateToken(testSessionClaims())
	require.NoError(t, err)

	_, err = manager.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.NotErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.Secret = "a-completely-different-32-char-secret!!"

	other, err := NewTokenManager(otherCfg)
	require.NoError(t, err)

	token, err := manager.CreateToken(testSessionClaims())
	require.NoError(t, err)

	_, err = other.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenMalformed(t *testing.T) {
	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	for _, token := range []string{
		"",
		"garbage",
		"one.two",
		"not.a.token",
		"a.b.c.d",
	} {
		_, err := manager.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, core.ErrTokenInvalid, "token %q", token)
	}
}

func TestVerifyTokenUnknownRole(t *testing.T) {
	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	claims := testSessionClaims()
	claims.Role = "superuser"

	token, err := manager.CreateToken(claims)
	require.NoError(t, err)

	_, err = manager.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
