// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/copperline/copperline/internal/core"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
)

// Claims is the verified identity attached to a request. It is a snapshot
// of the user at login time; it is never mutated and is not kept in sync
// with later user changes.
type Claims struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	TenantID  int64
	TenantKey string
	TokenID   string
	ExpiresAt time.Time
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// Authenticator gates a route group behind a valid bearer token. Public
// routes (login, health, metrics) are registered outside groups using this
// middleware; that registration is the allow-list.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				authFailures.WithLabelValues("missing").Inc()
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())

			if claims == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[claims.Role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireElevated admits only operator-tenant staff roles: the combination
// that the scope resolver grants cross-tenant visibility.
func RequireElevated(operatorKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())

			if claims == nil {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if claims.TenantKey != operatorKey || !IsElevatedRole(claims.Role) {
				core.JSONError(
					w,
					core.ForbiddenError("operator access required"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IsElevatedRole reports whether role belongs to the staff set that, under
// the operator tenant, is granted cross-tenant visibility.
func IsElevatedRole(role string) bool {
	switch role {
	case "administrator", "project_manager", "staff":
		return true
	}
	return false
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		authFailures.WithLabelValues("rejected").Inc()
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		authFailures.WithLabelValues("expired").Inc()
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		authFailures.WithLabelValues("revoked").Inc()
		core.JSONError(w, core.TokenRevokedError())
	default:
		authFailures.WithLabelValues("invalid").Inc()
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetClaims(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

func GetTenantID(ctx context.Context) int64 {
	if claims := GetClaims(ctx); claims != nil {
		return claims.TenantID
	}
	return 0
}

func IsAuthenticated(ctx context.Context) bool {
	return GetClaims(ctx) != nil
}
