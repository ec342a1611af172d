// AngelaMos | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/copperline/copperline/internal/core"
)

type Repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (id, tenant_id, client_id, name, description,
			status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.TenantID, p.ClientID, p.Name, p.Description, p.Status,
		p.DueDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("create project: unknown client: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Project, error) {
	query := `
		SELECT id, tenant_id, client_id, name, description, status,
			due_date, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var p Project
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &p, nil
}

func (r *Repository) List(
	ctx context.Context,
	tenantIDs []int64,
	status string,
	limit int,
	offset int,
) ([]Project, int, error) {
	if len(tenantIDs) == 0 {
		return []Project{}, 0, nil
	}

	statusFilter := ""
	if status != "" {
		statusFilter = "AND status = ?"
	}

	countArgsIn := []any{tenantIDs}
	if status != "" {
		countArgsIn = append(countArgsIn, status)
	}

	countQuery, countArgs, err := sqlx.In(fmt.Sprintf(`
		SELECT COUNT(*)
		FROM projects
		WHERE tenant_id IN (?) %s`, statusFilter),
		countArgsIn...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	listArgsIn := append(countArgsIn, limit, offset)
	listQuery, listArgs, err := sqlx.In(fmt.Sprintf(`
		SELECT id, tenant_id, client_id, name, description, status,
			due_date, created_at, updated_at
		FROM projects
		WHERE tenant_id IN (?) %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, statusFilter),
		listArgsIn...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	projects := []Project{}
	err = r.db.SelectContext(ctx, &projects, r.db.Rebind(listQuery), listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	return projects, total, nil
}

func (r *Repository) Update(ctx context.Context, p *Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, due_date = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.Description, p.Status, p.DueDate,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update project: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}
