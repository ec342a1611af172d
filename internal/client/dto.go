// AngelaMos | 2026
// dto.go

package client

type CreateClientRequest struct {
	TenantID int64  `json:"tenant_id"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Company  string `json:"company" validate:"omitempty,max=255"`
	Notes    string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateClientRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Company string `json:"company" validate:"omitempty,max=255"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}
