// AngelaMos | 2026
// entity.go

package invoice

import "time"

const (
	StatusDraft = "draft"
	StatusSent  = "sent"
	StatusPaid  = "paid"
	StatusVoid  = "void"
)

// Invoice moves through a one-way status machine:
//
//	draft -> sent -> paid
//	draft -> void
//	sent  -> void
//
// Overdue is not a stored status. It is derived from a sent invoice whose
// due date has passed, so clearing it never needs a writeback.
type Invoice struct {
	ID          string     `db:"id" json:"id"`
	TenantID    int64      `db:"tenant_id" json:"tenant_id"`
	ClientID    string     `db:"client_id" json:"client_id"`
	ProjectID   *string    `db:"project_id" json:"project_id,omitempty"`
	Number      string     `db:"number" json:"number"`
	Status      string     `db:"status" json:"status"`
	AmountCents int64      `db:"amount_cents" json:"amount_cents"`
	Currency    string     `db:"currency" json:"currency"`
	IssuedAt    *time.Time `db:"issued_at" json:"issued_at,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	VoidedAt    *time.Time `db:"voided_at" json:"voided_at,omitempty"`
	Notes       string     `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

func (i *Invoice) Overdue(now time.Time) bool {
	return i.Status == StatusSent &&
		i.DueDate != nil &&
		i.DueDate.Before(now)
}

// CanTransition encodes the status machine above.
func CanTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusSent || to == StatusVoid
	case StatusSent:
		return to == StatusPaid || to == StatusVoid
	}
	return false
}
