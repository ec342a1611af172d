// AngelaMos | 2026
// repository_test.go

package invoice

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/copperline/internal/core"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewRepository(db), mock
}

func invoiceColumns() []string {
	return []string{
		"id", "tenant_id", "client_id", "project_id", "number", "status",
		"amount_cents", "currency", "issued_at", "due_date", "paid_at",
		"voided_at", "notes", "created_at", "updated_at",
	}
}

func TestTransitionGuardedByCurrentStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = $2")).
		WithArgs("inv-1", StatusDraft, StatusSent).
		WillReturnRows(sqlmock.NewRows(invoiceColumns()).AddRow(
			"inv-1", int64(3), "client-1", nil, "INV-000001", StatusSent,
			int64(150000), "USD", now, nil, nil, nil, "", now, now,
		))

	inv, err := repo.Transition(context.Background(), "inv-1", StatusDraft, StatusSent)
	require.NoError(t, err)

	assert.Equal(t, StatusSent, inv.Status)
	assert.NotNil(t, inv.IssuedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStaleStatusFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Another request already moved the invoice; the guard matches zero
	// rows and the transition is rejected.
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = $2")).
		WithArgs("inv-1", StatusDraft, StatusSent).
		WillReturnRows(sqlmock.NewRows(invoiceColumns()))

	_, err := repo.Transition(context.Background(), "inv-1", StatusDraft, StatusSent)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextNumberFormatsSequence(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM invoices")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(42))

	number, err := repo.NextNumber(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "INV-000042", number)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmptyScopeSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	invoices, total, err := repo.List(context.Background(), nil, "", 20, 0)
	require.NoError(t, err)

	assert.Empty(t, invoices)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
