// AngelaMos | 2026
// service.go

package activity

import (
	"context"
	"log/slog"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/tenant"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an audit entry. It never fails the calling operation: a
// write error is logged and dropped, because losing one feed entry is
// better than failing the business action it describes.
func (s *Service) Record(
	ctx context.Context,
	tenantID int64,
	userID string,
	action string,
	detail string,
) {
	a := &Activity{
		ID:       core.NewID(),
		TenantID: tenantID,
		UserID:   userID,
		Action:   action,
		Detail:   detail,
	}

	if err := s.repo.Insert(ctx, a); err != nil {
		slog.Error("record activity",
			"error", err,
			"action", action,
			"tenant_id", tenantID,
		)
	}
}

func (s *Service) List(
	ctx context.Context,
	scope tenant.Scope,
	page int,
	pageSize int,
) ([]Activity, int, error) {
	if scope.Empty() {
		return []Activity{}, 0, nil
	}

	offset := (page - 1) * pageSize
	return s.repo.List(ctx, scope.IDs(), pageSize, offset)
}

func (s *Service) Recent(
	ctx context.Context,
	scope tenant.Scope,
	limit int,
) ([]Activity, error) {
	if scope.Empty() {
		return []Activity{}, nil
	}

	return s.repo.Recent(ctx, scope.IDs(), limit)
}
