// AngelaMos | 2026
// repository.go

package dashboard

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

type statusAmount struct {
	Status      string `db:"status"`
	Count       int64  `db:"count"`
	AmountCents int64  `db:"amount_cents"`
}

func (r *Repository) CountClients(
	ctx context.Context,
	tenantIDs []int64,
) (int64, error) {
	return r.countIn(ctx, tenantIDs, `
		SELECT COUNT(*)
		FROM clients
		WHERE tenant_id IN (?) AND archived_at IS NULL`)
}

func (r *Repository) CountActiveProjects(
	ctx context.Context,
	tenantIDs []int64,
) (int64, error) {
	return r.countIn(ctx, tenantIDs, `
		SELECT COUNT(*)
		FROM projects
		WHERE tenant_id IN (?) AND status = 'active'`)
}

// InvoiceTotals groups count and amount by status in one pass. Overdue is
// derived in the service from the sent bucket, not stored.
func (r *Repository) InvoiceTotals(
	ctx context.Context,
	tenantIDs []int64,
) (map[string]InvoiceBucket, error) {
	query, args, err := sqlx.In(`
		SELECT status, COUNT(*) AS count,
			COALESCE(SUM(amount_cents), 0) AS amount_cents
		FROM invoices
		WHERE tenant_id IN (?)
		GROUP BY status`,
		tenantIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("invoice totals: %w", err)
	}

	rows := []statusAmount{}
	err = r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("invoice totals: %w", err)
	}

	totals := make(map[string]InvoiceBucket, len(rows))
	for _, row := range rows {
		totals[row.Status] = InvoiceBucket{
			Count:       row.Count,
			AmountCents: row.AmountCents,
		}
	}

	return totals, nil
}

func (r *Repository) CountOverdueInvoices(
	ctx context.Context,
	tenantIDs []int64,
) (int64, error) {
	return r.countIn(ctx, tenantIDs, `
		SELECT COUNT(*)
		FROM invoices
		WHERE tenant_id IN (?) AND status = 'sent'
			AND due_date IS NOT NULL AND due_date < NOW()`)
}

func (r *Repository) countIn(
	ctx context.Context,
	tenantIDs []int64,
	rawQuery string,
) (int64, error) {
	query, args, err := sqlx.In(rawQuery, tenantIDs)
	if err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}

	var count int64
	err = r.db.GetContext(ctx, &count, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}

	return count, nil
}
