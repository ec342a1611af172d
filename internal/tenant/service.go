// AngelaMos | 2026
// service.go

package tenant

import (
	"context"
	"fmt"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateTenantRequest,
) (*Tenant, error) {
	t := &Tenant{
		Key:  req.Key,
		Name: req.Name,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Tenant, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateTenantRequest,
) (*Tenant, error) {
	t, err := s.repo.UpdateName(ctx, id, req.Name)
	if err != nil {
		return nil, fmt.Errorf("update tenant %d: %w", id, err)
	}

	return t, nil
}
