// AngelaMos | 2026
// repository.go

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/copperline/copperline/internal/core"
)

type Repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *Tenant) error {
	query := `
		INSERT INTO tenants (key, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, t, query, t.Key, t.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create tenant: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create tenant: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Tenant, error) {
	query := `
		SELECT id, key, name, created_at, updated_at
		FROM tenants
		WHERE id = $1`

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get tenant by id: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant by id: %w", err)
	}

	return &t, nil
}

func (r *Repository) GetByKey(ctx context.Context, key string) (*Tenant, error) {
	query := `
		SELECT id, key, name, created_at, updated_at
		FROM tenants
		WHERE key = $1`

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get tenant by key: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant by key: %w", err)
	}

	return &t, nil
}

func (r *Repository) List(ctx context.Context) ([]Tenant, error) {
	query := `
		SELECT id, key, name, created_at, updated_at
		FROM tenants
		ORDER BY key`

	tenants := []Tenant{}
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	return tenants, nil
}

// ListIDs returns the full tenant catalog for scope resolution.
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM tenants ORDER BY id`

	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list tenant ids: %w", err)
	}

	return ids, nil
}

// UpdateName changes the display name only. The key is immutable: rows in
// every other table are scoped by tenant id and external references use
// the key, so neither may drift.
func (r *Repository) UpdateName(
	ctx context.Context,
	id int64,
	name string,
) (*Tenant, error) {
	query := `
		UPDATE tenants
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, key, name, created_at, updated_at`

	var t Tenant
	err := r.db.GetContext(ctx, &t, query, id, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update tenant: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("update tenant: %w", err)
	}

	return &t, nil
}
