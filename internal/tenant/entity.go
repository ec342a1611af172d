// AngelaMos | 2026
// entity.go

package tenant

import "time"

// Tenant is a workspace. The key is a short human-readable identifier
// ("OPS", "ACME") and is immutable after creation; everything row-level
// in the system hangs off the numeric id.
type Tenant struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
