// AngelaMos | 2026
// entity.go

package activity

import "time"

// Activity is an append-only audit row. Entries are never updated or
// deleted; the feed is the system's who-did-what record.
type Activity struct {
	ID        string    `db:"id" json:"id"`
	TenantID  int64     `db:"tenant_id" json:"tenant_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
