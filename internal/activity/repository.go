// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/copperline/copperline/internal/core"
)

type Repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, a *Activity) error {
	query := `
		INSERT INTO activities (id, tenant_id, user_id, action, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID, a.TenantID, a.UserID, a.Action, a.Detail,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

func (r *Repository) List(
	ctx context.Context,
	tenantIDs []int64,
	limit int,
	offset int,
) ([]Activity, int, error) {
	if len(tenantIDs) == 0 {
		return []Activity{}, 0, nil
	}

	countQuery, countArgs, err := sqlx.In(`
		SELECT COUNT(*)
		FROM activities
		WHERE tenant_id IN (?)`,
		tenantIDs,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	// ULIDs sort lexicographically by creation time, so ordering by id
	// gives a stable newest-first feed even within the same timestamp.
	listQuery, listArgs, err := sqlx.In(`
		SELECT id, tenant_id, user_id, action, detail, created_at
		FROM activities
		WHERE tenant_id IN (?)
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		tenantIDs, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}

	activities := []Activity{}
	err = r.db.SelectContext(ctx, &activities, r.db.Rebind(listQuery), listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}

	return activities, total, nil
}

// Recent returns the newest entries without pagination bookkeeping, for
// the dashboard feed.
func (r *Repository) Recent(
	ctx context.Context,
	tenantIDs []int64,
	limit int,
) ([]Activity, error) {
	if len(tenantIDs) == 0 {
		return []Activity{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, tenant_id, user_id, action, detail, created_at
		FROM activities
		WHERE tenant_id IN (?)
		ORDER BY id DESC
		LIMIT ?`,
		tenantIDs, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	activities := []Activity{}
	err = r.db.SelectContext(ctx, &activities, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	return activities, nil
}
