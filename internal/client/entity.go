// AngelaMos | 2026
// entity.go

package client

import "time"

// Client is a billable contact within a tenant: the party projects are
// delivered to and invoices are issued against.
type Client struct {
	ID         string     `db:"id" json:"id"`
	TenantID   int64      `db:"tenant_id" json:"tenant_id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Phone      string     `db:"phone" json:"phone,omitempty"`
	Company    string     `db:"company" json:"company,omitempty"`
	Notes      string     `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
	ArchivedAt *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

func (c *Client) Archived() bool {
	return c.ArchivedAt != nil
}
