// AngelaMos | 2026
// dto.go

package tenant

type CreateTenantRequest struct {
	Key  string `json:"key" validate:"required,min=2,max=8,alphanum,uppercase"`
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type UpdateTenantRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}
