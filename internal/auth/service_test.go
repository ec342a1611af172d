// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/copperline/internal/core"
)

type stubDirectory struct {
	byLogin map[string]*Credentials
	byID    map[string]*Credentials
}

func (d *stubDirectory) GetByLogin(
	_ context.Context,
	tenantKey string,
	email string,
) (*Credentials, error) {
	if c, ok := d.byLogin[tenantKey+"/"+email]; ok {
		return c, nil
	}
	return nil, core.ErrNotFound
}

func (d *stubDirectory) GetByID(
	_ context.Context,
	id string,
) (*Credentials, error) {
	if c, ok := d.byID[id]; ok {
		return c, nil
	}
	return nil, core.ErrNotFound
}

func newLoginFixture(t *testing.T, active bool) (*Service, LoginRequest) {
	t.Helper()

	salt, err := core.NewSalt()
	require.NoError(t, err)

	digest, err := core.HashPassword(salt, "correct-password-123")
	require.NoError(t, err)

	creds := &Credentials{
		ID:             "user-1",
		Email:          "ana@example.com",
		Name:           "Ana Torres",
		Role:           "staff",
		TenantID:       3,
		TenantKey:      "ACME",
		Salt:           &salt,
		PasswordDigest: &digest,
		Active:         active,
	}

	dir := &stubDirectory{
		byLogin: map[string]*Credentials{"ACME/ana@example.com": creds},
		byID:    map[string]*Credentials{"user-1": creds},
	}

	manager, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	svc := NewService(manager, dir, nil, nil)

	return svc, LoginRequest{
		Tenant:   "ACME",
		Email:    "ana@example.com",
		Password: "correct-password-123",
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, req := newLoginFixture(t, true)

	resp, err := svc.Login(context.Background(), req, "", "127.0.0.1")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, int64(3), resp.User.TenantID)
	assert.Equal(t, "ACME", resp.User.TenantKey)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := svc.tokens.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, req := newLoginFixture(t, true)
	req.Password = "wrong-password"

	_, err := svc.Login(context.Background(), req, "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, req := newLoginFixture(t, true)
	req.Email = "nobody@example.com"

	_, err := svc.Login(context.Background(), req, "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongTenant(t *testing.T) {
	svc, req := newLoginFixture(t, true)
	req.Tenant = "OTHER"

	_, err := svc.Login(context.Background(), req, "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, req := newLoginFixture(t, false)

	// The password is correct; the account state alone must reject, and
	// with the same error the wrong password produces.
	_, err := svc.Login(context.Background(), req, "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetCurrentUser(t *testing.T) {
	svc, req := newLoginFixture(t, true)

	resp, err := svc.Login(context.Background(), req, "", "127.0.0.1")
	require.NoError(t, err)

	claims, err := svc.tokens.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)

	user, err := svc.GetCurrentUser(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "staff", user.Role)
}
