// AngelaMos | 2026
// dto.go

package auth

import "time"

type LoginRequest struct {
	Tenant   string `json:"tenant" validate:"required,max=32"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	TenantID  int64  `json:"tenant_id"`
	TenantKey string `json:"tenant_key"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}
