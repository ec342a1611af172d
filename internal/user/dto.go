// AngelaMos | 2026
// dto.go

package user

type CreateUserRequest struct {
	// TenantID is only consulted for cross-tenant (operator) callers;
	// everyone else has it bound from their scope.
	TenantID int64  `json:"tenant_id"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=administrator project_manager staff client"`
	Password string `json:"password" validate:"required,min=12,max=128"`
}

type UpdateUserRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	Role string `json:"role" validate:"required,oneof=administrator project_manager staff client"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=12,max=128"`
}

type ListUsersQuery struct {
	Page     int
	PageSize int
}
