// AngelaMos | 2026
// entity.go

package project

import "time"

const (
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

type Project struct {
	ID          string     `db:"id" json:"id"`
	TenantID    int64      `db:"tenant_id" json:"tenant_id"`
	ClientID    string     `db:"client_id" json:"client_id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description,omitempty"`
	Status      string     `db:"status" json:"status"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
