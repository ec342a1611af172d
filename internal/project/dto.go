// AngelaMos | 2026
// dto.go

package project

import "time"

type CreateProjectRequest struct {
	TenantID    int64      `json:"tenant_id"`
	ClientID    string     `json:"client_id" validate:"required,uuid"`
	Name        string     `json:"name" validate:"required,min=2,max=255"`
	Description string     `json:"description" validate:"omitempty,max=4000"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=255"`
	Description string     `json:"description" validate:"omitempty,max=4000"`
	Status      string     `json:"status" validate:"required,oneof=active on_hold completed archived"`
	DueDate     *time.Time `json:"due_date"`
}
