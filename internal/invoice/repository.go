// AngelaMos | 2026
// repository.go

package invoice

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

func (r *Repository) Create(ctx context.Context, i *Invoice) error {
	query := `
		INSERT INTO invoices (id, tenant_id, client_id, project_id, number,
			status, amount_cents, currency, due_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		i.ID, i.TenantID, i.ClientID, i.ProjectID, i.Number, i.Status,
		i.AmountCents, i.Currency, i.DueDate, i.Notes,
	).Scan(&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	query := `
		SELECT id, tenant_id, client_id, project_id, number, status,
			amount_cents, currency, issued_at, due_date, paid_at, voided_at,
			notes, created_at, updated_at
		FROM invoices
		WHERE id = $1`

	var i Invoice
	err := r.db.GetContext(ctx, &i, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get invoice: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return &i, nil
}

func (r *Repository) List(
	ctx context.Context,
	tenantIDs []int64,
	status string,
	limit int,
	offset int,
) ([]Invoice, int, error) {
	if len(tenantIDs) == 0 {
		return []Invoice{}, 0, nil
	}

	statusFilter := ""
	argsIn := []any{tenantIDs}
	if status != "" {
		statusFilter = "AND status = ?"
		argsIn = append(argsIn, status)
	}

	countQuery, countArgs, err := sqlx.In(fmt.Sprintf(`
		SELECT COUNT(*)
		FROM invoices
		WHERE tenant_id IN (?) %s`, statusFilter),
		argsIn...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	listQuery, listArgs, err := sqlx.In(fmt.Sprintf(`
		SELECT id, tenant_id, client_id, project_id, number, status,
			amount_cents, currency, issued_at, due_date, paid_at, voided_at,
			notes, created_at, updated_at
		FROM invoices
		WHERE tenant_id IN (?) %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, statusFilter),
		append(argsIn, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}

	invoices := []Invoice{}
	err = r.db.SelectContext(ctx, &invoices, r.db.Rebind(listQuery), listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}

	return invoices, total, nil
}

// UpdateDraft rewrites the editable fields. The status predicate in the
// WHERE clause makes draft-only editing atomic with the read.
func (r *Repository) UpdateDraft(ctx context.Context, i *Invoice) error {
	query := `
		UPDATE invoices
		SET amount_cents = $2, currency = $3, due_date = $4, notes = $5,
			updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		i.ID, i.AmountCents, i.Currency, i.DueDate, i.Notes,
	).Scan(&i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update invoice: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("update invoice: %w", err)
	}

	return nil
}

// Transition moves status with a guard on the expected current status, so
// concurrent transitions cannot double-apply.
func (r *Repository) Transition(
	ctx context.Context,
	id string,
	from string,
	to string,
) (*Invoice, error) {
	query := `
		UPDATE invoices
		SET status = $3,
			issued_at = CASE WHEN $3 = 'sent' THEN NOW() ELSE issued_at END,
			paid_at = CASE WHEN $3 = 'paid' THEN NOW() ELSE paid_at END,
			voided_at = CASE WHEN $3 = 'void' THEN NOW() ELSE voided_at END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id, tenant_id, client_id, project_id, number, status,
			amount_cents, currency, issued_at, due_date, paid_at, voided_at,
			notes, created_at, updated_at`

	var i Invoice
	err := r.db.GetContext(ctx, &i, query, id, from, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transition invoice: %w", core.ErrInvalidInput)
		}
		return nil, fmt.Errorf("transition invoice: %w", err)
	}

	return &i, nil
}

// NextNumber allocates a per-tenant sequential invoice number.
func (r *Repository) NextNumber(
	ctx context.Context,
	tenantID int64,
) (string, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 5) AS INTEGER)), 0) + 1
		FROM invoices
		WHERE tenant_id = $1`

	var next int
	if err := r.db.GetContext(ctx, &next, query, tenantID); err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}

	return fmt.Sprintf("INV-%06d", next), nil
}
