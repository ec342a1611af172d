// AngelaMos | 2026
// entity.go

package user

import "time"

const (
	RoleAdministrator  = "administrator"
	RoleProjectManager = "project_manager"
	RoleStaff          = "staff"
	RoleClient         = "client"
)

// User belongs to exactly one tenant. Salt and PasswordDigest never leave
// the process; soft deletes keep the row for activity history.
type User struct {
	ID             string     `db:"id" json:"id"`
	TenantID       int64      `db:"tenant_id" json:"tenant_id"`
	Email          string     `db:"email" json:"email"`
	Name           string     `db:"name" json:"name"`
	Role           string     `db:"role" json:"role"`
	Salt           string     `db:"salt" json:"-"`
	PasswordDigest string     `db:"password_digest" json:"-"`
	Active         bool       `db:"active" json:"active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at" json:"-"`
}
