// AngelaMos | 2026
// dto.go

package invoice

import "time"

type CreateInvoiceRequest struct {
	TenantID    int64      `json:"tenant_id"`
	ClientID    string     `json:"client_id" validate:"required,uuid"`
	ProjectID   *string    `json:"project_id" validate:"omitempty,uuid"`
	AmountCents int64      `json:"amount_cents" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"required,len=3,uppercase"`
	DueDate     *time.Time `json:"due_date"`
	Notes       string     `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateInvoiceRequest struct {
	AmountCents int64      `json:"amount_cents" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"required,len=3,uppercase"`
	DueDate     *time.Time `json:"due_date"`
	Notes       string     `json:"notes" validate:"omitempty,max=2000"`
}

// InvoiceResponse decorates the stored row with the derived overdue flag.
type InvoiceResponse struct {
	Invoice
	Overdue bool `json:"overdue"`
}

func NewInvoiceResponse(i Invoice, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		Invoice: i,
		Overdue: i.Overdue(now),
	}
}
