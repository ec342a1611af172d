// AngelaMos | 2026
// service.go

package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/tenant"
)

type activityRecorder interface {
	Record(ctx context.Context, tenantID int64, userID, action, detail string)
}

type Service struct {
	repo       *Repository
	activities activityRecorder
}

func NewService(repo *Repository, activities activityRecorder) *Service {
	return &Service{repo: repo, activities: activities}
}

func (s *Service) Create(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	req CreateClientRequest,
) (*Client, error) {
	tenantID, err := scope.Bind(req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	c := &Client{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Notes:    req.Notes,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, c.TenantID, actorID, "client.created", c.Name)

	return c, nil
}

func (s *Service) List(
	ctx context.Context,
	scope tenant.Scope,
	search string,
	includeArchived bool,
	page int,
	pageSize int,
) ([]Client, int, error) {
	if scope.Empty() {
		return []Client{}, 0, nil
	}

	offset := (page - 1) * pageSize
	return s.repo.List(ctx, scope.IDs(), search, includeArchived, pageSize, offset)
}

func (s *Service) Get(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !scope.Contains(c.TenantID) {
		return nil, fmt.Errorf("get client: out of scope: %w", core.ErrNotFound)
	}

	return c, nil
}

func (s *Service) Update(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
	req UpdateClientRequest,
) (*Client, error) {
	c, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Company = req.Company
	c.Notes = req.Notes

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, c.TenantID, actorID, "client.updated", c.Name)

	return c, nil
}

func (s *Service) Archive(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
) error {
	c, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}

	if err := s.repo.Archive(ctx, id); err != nil {
		return err
	}

	s.record(ctx, c.TenantID, actorID, "client.archived", c.Name)

	return nil
}

func (s *Service) record(
	ctx context.Context,
	tenantID int64,
	actorID string,
	action string,
	detail string,
) {
	if s.activities != nil {
		s.activities.Record(ctx, tenantID, actorID, action, detail)
	}
}
