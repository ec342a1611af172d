// AngelaMos | 2026
// token.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/copperline/copperline/internal/config"
	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/middleware"
)

// TokenManager signs and verifies the compact three-segment token
// (base64url header, payload, HMAC-SHA256 signature) with a symmetric
// secret injected from configuration. The secret never leaves this struct
// and is never logged.
type TokenManager struct {
	key    jwk.Key
	config config.AuthConfig
}

func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{
		key:    key,
		config: cfg,
	}, nil
}

// SessionClaims is the identity snapshot baked into a token at login.
type SessionClaims struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	TenantID  int64
	TenantKey string
}

func (m *TokenManager) CreateToken(claims SessionClaims) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(m.config.TokenExpire)).
		NotBefore(now).
		Claim("email", claims.Email).
		Claim("name", claims.Name).
		Claim("role", claims.Role).
		Claim("tenant_id", claims.TenantID).
		Claim("tenant_key", claims.TenantKey).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// VerifyToken checks structure, signature and expiry, then requires every
// claim so a malformed payload fails whole rather than producing a
// partially populated identity. Expired and invalid are distinct errors;
// both surface to callers as 401.
func (m *TokenManager) VerifyToken(
	ctx context.Context,
	tokenString string,
) (*middleware.Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	jti, ok := token.JwtID()
	if !ok || jti == "" {
		return nil, fmt.Errorf(
			"verify token: missing jti: %w",
			core.ErrTokenInvalid,
		)
	}

	expiry, ok := token.Expiration()
	if !ok {
		return nil, fmt.Errorf(
			"verify token: missing expiry: %w",
			core.ErrTokenInvalid,
		)
	}

	var email, name, role, tenantKey string
	for claim, dest := range map[string]*string{
		"email":      &email,
		"name":       &name,
		"role":       &role,
		"tenant_key": &tenantKey,
	} {
		if err := token.Get(claim, dest); err != nil {
			return nil, fmt.Errorf(
				"verify token: missing %s claim: %w",
				claim,
				core.ErrTokenInvalid,
			)
		}
	}

	if !isKnownRole(role) {
		return nil, fmt.Errorf(
			"verify token: unknown role %q: %w",
			role,
			core.ErrTokenInvalid,
		)
	}

	var tenantIDFloat float64
	if err := token.Get("tenant_id", &tenantIDFloat); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing tenant_id claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.Claims{
		UserID:    subject,
		Email:     email,
		Name:      name,
		Role:      role,
		TenantID:  int64(tenantIDFloat),
		TenantKey: tenantKey,
		TokenID:   jti,
		ExpiresAt: expiry,
	}, nil
}

func isKnownRole(role string) bool {
	switch role {
	case "administrator", "project_manager", "staff", "client":
		return true
	}
	return false
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
