// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/tenant"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create binds the new user's tenant from the caller's scope, never from
// the request body alone.
func (s *Service) Create(
	ctx context.Context,
	scope tenant.Scope,
	req CreateUserRequest,
) (*User, error) {
	tenantID, err := scope.Bind(req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	salt, err := core.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	digest, err := core.HashPassword(salt, req.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	u := &User{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		Email:          req.Email,
		Name:           req.Name,
		Role:           req.Role,
		Salt:           salt,
		PasswordDigest: digest,
		Active:         true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) List(
	ctx context.Context,
	scope tenant.Scope,
	query ListUsersQuery,
) ([]User, int, error) {
	if scope.Empty() {
		return []User{}, 0, nil
	}

	offset := (query.Page - 1) * query.PageSize
	return s.repo.List(ctx, scope.IDs(), query.PageSize, offset)
}

// Get returns not-found rather than forbidden for rows outside the scope
// so callers cannot probe for other tenants' user ids.
func (s *Service) Get(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !scope.Contains(u.TenantID) {
		return nil, fmt.Errorf("get user: out of scope: %w", core.ErrNotFound)
	}

	return u, nil
}

func (s *Service) Update(
	ctx context.Context,
	scope tenant.Scope,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	u, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	u.Name = req.Name
	u.Role = req.Role

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID string,
	req ChangePasswordRequest,
) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	valid := core.VerifyPasswordTimingSafe(
		req.CurrentPassword,
		&u.Salt,
		&u.PasswordDigest,
	)
	if !valid {
		return fmt.Errorf("change password: %w", core.ErrUnauthorized)
	}

	salt, err := core.NewSalt()
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	digest, err := core.HashPassword(salt, req.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, salt, digest)
}

func (s *Service) SetActive(
	ctx context.Context,
	scope tenant.Scope,
	id string,
	active bool,
) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}

	return s.repo.SetActive(ctx, id, active)
}

func (s *Service) Delete(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, id)
}
