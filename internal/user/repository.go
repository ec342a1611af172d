// AngelaMos | 2026
// repository.go

package user

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

func (r *Repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, tenant_id, email, name, role, salt,
			password_digest, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		u.ID, u.TenantID, u.Email, u.Name, u.Role, u.Salt,
		u.PasswordDigest, u.Active,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, tenant_id, email, name, role, salt, password_digest,
			active, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user by id: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

// loginRow carries the joined tenant key alongside the user columns so
// login resolves tenant and user in one round trip.
type loginRow struct {
	User
	TenantKey string `db:"tenant_key"`
}

func (r *Repository) GetByLogin(
	ctx context.Context,
	tenantKey string,
	email string,
) (*User, string, error) {
	query := `
		SELECT u.id, u.tenant_id, u.email, u.name, u.role, u.salt,
			u.password_digest, u.active, u.created_at, u.updated_at,
			u.deleted_at, t.key AS tenant_key
		FROM users u
		JOIN tenants t ON t.id = u.tenant_id
		WHERE t.key = $1 AND u.email = $2 AND u.deleted_at IS NULL`

	var row loginRow
	err := r.db.GetContext(ctx, &row, query, tenantKey, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", fmt.Errorf("get user by login: %w", core.ErrNotFound)
		}
		return nil, "", fmt.Errorf("get user by login: %w", err)
	}

	return &row.User, row.TenantKey, nil
}

func (r *Repository) List(
	ctx context.Context,
	tenantIDs []int64,
	limit int,
	offset int,
) ([]User, int, error) {
	if len(tenantIDs) == 0 {
		return []User{}, 0, nil
	}

	countQuery, countArgs, err := sqlx.In(`
		SELECT COUNT(*)
		FROM users
		WHERE tenant_id IN (?) AND deleted_at IS NULL`,
		tenantIDs,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	listQuery, listArgs, err := sqlx.In(`
		SELECT id, tenant_id, email, name, role, salt, password_digest,
			active, created_at, updated_at, deleted_at
		FROM users
		WHERE tenant_id IN (?) AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		tenantIDs, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := []User{}
	err = r.db.SelectContext(ctx, &users, r.db.Rebind(listQuery), listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *Repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $2, role = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, u.ID, u.Name, u.Role).
		Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update user: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *Repository) UpdatePassword(
	ctx context.Context,
	id string,
	salt string,
	digest string,
) error {
	query := `
		UPDATE users
		SET salt = $2, password_digest = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, salt, digest)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return requireRow(res, "update password")
}

// SetActive toggles account activation. Deactivation takes effect on the
// next login; already-issued tokens remain valid until natural expiry.
func (r *Repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	query := `
		UPDATE users
		SET active = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}

	return requireRow(res, "set user active")
}

func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return requireRow(res, "delete user")
}

func requireRow(res sql.Result, op string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}
