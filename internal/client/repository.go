// AngelaMos | 2026
// repository.go

package client

import (
	"context"
	"database/sql"
	"errors"
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

func (r *Repository) Create(ctx context.Context, c *Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, name, email, phone, company, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.Company, c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, company, notes,
			created_at, updated_at, archived_at
		FROM clients
		WHERE id = $1`

	var c Client
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get client: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	return &c, nil
}

func (r *Repository) List(
	ctx context.Context,
	tenantIDs []int64,
	search string,
	includeArchived bool,
	limit int,
	offset int,
) ([]Client, int, error) {
	if len(tenantIDs) == 0 {
		return []Client{}, 0, nil
	}

	filters := ""
	argsIn := []any{tenantIDs}

	if !includeArchived {
		filters += " AND archived_at IS NULL"
	}

	if search != "" {
		filters += " AND (name ILIKE ? OR email ILIKE ? OR company ILIKE ?)"
		pattern := "%" + search + "%"
		argsIn = append(argsIn, pattern, pattern, pattern)
	}

	countQuery, countArgs, err := sqlx.In(fmt.Sprintf(`
		SELECT COUNT(*)
		FROM clients
		WHERE tenant_id IN (?)%s`, filters),
		argsIn...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	listQuery, listArgs, err := sqlx.In(fmt.Sprintf(`
		SELECT id, tenant_id, name, email, phone, company, notes,
			created_at, updated_at, archived_at
		FROM clients
		WHERE tenant_id IN (?)%s
		ORDER BY name
		LIMIT ? OFFSET ?`, filters),
		append(argsIn, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}

	clients := []Client{}
	err = r.db.SelectContext(ctx, &clients, r.db.Rebind(listQuery), listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}

	return clients, total, nil
}

func (r *Repository) Update(ctx context.Context, c *Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5, notes = $6,
			updated_at = NOW()
		WHERE id = $1 AND archived_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Notes,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update client: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update client: %w", err)
	}

	return nil
}

// TenantOf reports which tenant owns a client, for cross-reference checks
// when other records point at a client id.
func (r *Repository) TenantOf(ctx context.Context, id string) (int64, error) {
	query := `SELECT tenant_id FROM clients WHERE id = $1`

	var tenantID int64
	err := r.db.GetContext(ctx, &tenantID, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("client tenant: %w", core.ErrNotFound)
		}
		return 0, fmt.Errorf("client tenant: %w", err)
	}

	return tenantID, nil
}

// Archive is the delete operation for clients. Rows are never removed so
// invoices keep a valid reference.
func (r *Repository) Archive(ctx context.Context, id string) error {
	query := `
		UPDATE clients
		SET archived_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND archived_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive client: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive client: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("archive client: %w", core.ErrNotFound)
	}

	return nil
}
