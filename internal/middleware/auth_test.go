// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/copperline/internal/core"
)

type stubVerifier struct {
	claims *Claims
	err    error
}

func (v *stubVerifier) VerifyToken(_ context.Context, _ string) (*Claims, error) {
	return v.claims, v.err
}

func runAuthenticated(
	t *testing.T,
	verifier TokenVerifier,
	authHeader string,
) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	Authenticator(verifier)(next).ServeHTTP(rec, req)

	return rec, nextCalled
}

func TestAuthenticatorMissingHeader(t *testing.T) {
	verifier := &stubVerifier{claims: &Claims{UserID: "u1"}}

	rec, nextCalled := runAuthenticated(t, verifier, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthenticatorGarbledHeader(t *testing.T) {
	verifier := &stubVerifier{claims: &Claims{UserID: "u1"}}

	for _, header := range []string{
		"Bearer",
		"Basic dXNlcjpwYXNz",
		"bearer ",
		"Token abc123",
	} {
		rec, nextCalled := runAuthenticated(t, verifier, header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, nextCalled, "header %q", header)
	}
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenInvalid),
	}

	rec, nextCalled := runAuthenticated(t, verifier, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenExpired),
	}

	rec, nextCalled := runAuthenticated(t, verifier, "Bearer old-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthenticatorRevokedToken(t *testing.T) {
	verifier := &stubVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenRevoked),
	}

	rec, nextCalled := runAuthenticated(t, verifier, "Bearer revoked-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
}

func TestAuthenticatorValidToken(t *testing.T) {
	want := &Claims{
		UserID:    "u1",
		Role:      "staff",
		TenantID:  4,
		TenantKey: "ACME",
	}
	verifier := &stubVerifier{claims: want}

	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rec := httptest.NewRecorder()
	Authenticator(verifier)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"BEARER abc.def.ghi", "abc.def.ghi"},
		{"Bearer", ""},
		{"Basic abc", ""},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}

		assert.Equal(t, tc.want, ExtractToken(req), "header %q", tc.header)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireRole("administrator")(next)

	// No claims in context.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong role.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ClaimsKey, &Claims{Role: "client"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Matching role.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx = context.WithValue(req.Context(), ClaimsKey, &Claims{Role: "administrator"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireElevated(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireElevated("OPS")(next)

	cases := []struct {
		name   string
		claims *Claims
		want   int
	}{
		{"operator administrator", &Claims{Role: "administrator", TenantKey: "OPS"}, http.StatusOK},
		{"operator staff", &Claims{Role: "staff", TenantKey: "OPS"}, http.StatusOK},
		{"operator client", &Claims{Role: "client", TenantKey: "OPS"}, http.StatusForbidden},
		{"ordinary tenant administrator", &Claims{Role: "administrator", TenantKey: "ACME"}, http.StatusForbidden},
		{"no claims", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.claims != nil {
			req = req.WithContext(
				context.WithValue(req.Context(), ClaimsKey, tc.claims),
			)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.name)
	}
}

func TestIsElevatedRole(t *testing.T) {
	assert.True(t, IsElevatedRole("administrator"))
	assert.True(t, IsElevatedRole("project_manager"))
	assert.True(t, IsElevatedRole("staff"))
	assert.False(t, IsElevatedRole("client"))
	assert.False(t, IsElevatedRole(""))
	assert.False(t, IsElevatedRole("Administrator"))
}
