// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mssola/useragent"
	"github.com/redis/go-redis/v9"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const denylistPrefix = "denylist:"

// Credentials is the user snapshot the directory hands back for login and
// profile lookups. Salt and PasswordDigest are nil-able so a missing row
// and a real row flow through the same timing-safe verification path.
type Credentials struct {
	ID             string
	Email          string
	Name           string
	Role           string
	TenantID       int64
	TenantKey      string
	Salt           *string
	PasswordDigest *string
	Active         bool
}

type UserDirectory interface {
	GetByLogin(ctx context.Context, tenantKey, email string) (*Credentials, error)
	GetByID(ctx context.Context, id string) (*Credentials, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, tenantID int64, userID, action, detail string)
}

type Service struct {
	tokens     *TokenManager
	users      UserDirectory
	redis      *redis.Client
	activities ActivityRecorder
}

func NewService(
	tokens *TokenManager,
	users UserDirectory,
	rdb *redis.Client,
	activities ActivityRecorder,
) *Service {
	return &Service{
		tokens:     tokens,
		users:      users,
		redis:      rdb,
		activities: activities,
	}
}

// Login authenticates within a single tenant. The password check always
// burns a full hash computation so unknown emails, wrong passwords and
// deactivated accounts are indistinguishable by response time, and all
// three collapse into ErrInvalidCredentials.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent string,
	remoteIP string,
) (*AuthResponse, error) {
	user, err := s.users.GetByLogin(ctx, req.Tenant, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(req.Password, nil, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	valid := core.VerifyPasswordTimingSafe(
		req.Password,
		user.Salt,
		user.PasswordDigest,
	)
	if !valid || !user.Active {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		TenantID:  user.TenantID,
		TenantKey: user.TenantKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	if s.activities != nil {
		s.activities.Record(
			ctx,
			user.TenantID,
			user.ID,
			"auth.login",
			loginDetail(userAgent, remoteIP),
		)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.config.TokenExpire),
		User: UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			TenantID:  user.TenantID,
			TenantKey: user.TenantKey,
		},
	}, nil
}

// Logout denylists the token's jti for the remainder of its lifetime.
// Tokens are otherwise stateless, so this is the only revocation path.
func (s *Service) Logout(ctx context.Context, claims *middleware.Claims) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	err := s.redis.Set(ctx, denylistPrefix+claims.TokenID, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("denylist token: %w", err)
	}

	if s.activities != nil {
		s.activities.Record(ctx, claims.TenantID, claims.UserID, "auth.logout", "")
	}

	return nil
}

// VerifyToken satisfies middleware.TokenVerifier: signature and claim
// checks first, then the revocation denylist. A redis outage fails open
// on the denylist check because tokens are short-lived and blocking every
// authenticated request is the worse failure mode.
func (s *Service) VerifyToken(
	ctx context.Context,
	token string,
) (*middleware.Claims, error) {
	claims, err := s.tokens.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	exists, err := s.redis.Exists(ctx, denylistPrefix+claims.TokenID).Result()
	if err != nil {
		slog.Warn("denylist check failed, allowing token",
			"error", err,
		)
		return claims, nil
	}

	if exists > 0 {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	claims *middleware.Claims,
) (*UserInfo, error) {
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}

	return &UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		TenantID:  user.TenantID,
		TenantKey: user.TenantKey,
	}, nil
}

func loginDetail(userAgent, remoteIP string) string {
	if userAgent == "" {
		return "ip=" + remoteIP
	}

	ua := useragent.New(userAgent)
	browser, version := ua.Browser()

	return fmt.Sprintf(
		"ip=%s browser=%s/%s os=%s",
		remoteIP,
		browser,
		version,
		ua.OS(),
	)
}
