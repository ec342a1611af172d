// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/tenant"
)

type clientLookup interface {
	TenantOf(ctx context.Context, clientID string) (int64, error)
}

type activityRecorder interface {
	Record(ctx context.Context, tenantID int64, userID, action, detail string)
}

type Service struct {
	repo       *Repository
	clients    clientLookup
	activities activityRecorder
}

func NewService(
	repo *Repository,
	clients clientLookup,
	activities activityRecorder,
) *Service {
	return &Service{repo: repo, clients: clients, activities: activities}
}

// Create requires the referenced client to live in the same tenant as the
// project. Cross-tenant client references are rejected as invalid input,
// not as not-found, because the tenant id itself was already in scope.
func (s *Service) Create(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	req CreateProjectRequest,
) (*Project, error) {
	tenantID, err := scope.Bind(req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	clientTenant, err := s.clients.TenantOf(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if clientTenant != tenantID {
		return nil, fmt.Errorf("create project: client belongs to another tenant: %w", core.ErrInvalidInput)
	}

	p := &Project{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      StatusActive,
		DueDate:     req.DueDate,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.activities != nil {
		s.activities.Record(ctx, p.TenantID, actorID, "project.created", p.Name)
	}

	return p, nil
}

func (s *Service) List(
	ctx context.Context,
	scope tenant.Scope,
	status string,
	page int,
	pageSize int,
) ([]Project, int, error) {
	if scope.Empty() {
		return []Project{}, 0, nil
	}

	offset := (page - 1) * pageSize
	return s.repo.List(ctx, scope.IDs(), status, pageSize, offset)
}

func (s *Service) Get(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !scope.Contains(p.TenantID) {
		return nil, fmt.Errorf("get project: out of scope: %w", core.ErrNotFound)
	}

	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
	req UpdateProjectRequest,
) (*Project, error) {
	p, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Status = req.Status
	p.DueDate = req.DueDate

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if s.activities != nil {
		s.activities.Record(ctx, p.TenantID, actorID, "project.updated", p.Name)
	}

	return p, nil
}
