// AngelaMos | 2026
// repository_test.go

package user

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

func userColumns() []string {
	return []string{
		"id", "tenant_id", "email", "name", "role", "salt",
		"password_digest", "active", "created_at", "updated_at",
		"deleted_at",
	}
}

func TestGetByLoginFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	columns := append(userColumns(), "tenant_key")

	mock.ExpectQuery(regexp.QuoteMeta("JOIN tenants t ON t.id = u.tenant_id")).
		WithArgs("ACME", "ana@example.com").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"user-1", int64(3), "ana@example.com", "Ana Torres", "staff",
			"salt", "digest", true, now, now, nil, "ACME",
		))

	u, key, err := repo.GetByLogin(context.Background(), "ACME", "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, int64(3), u.TenantID)
	assert.Equal(t, "staff", u.Role)
	assert.True(t, u.Active)
	assert.Equal(t, "ACME", key)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByLoginNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN tenants t ON t.id = u.tenant_id")).
		WithArgs("ACME", "nobody@example.com").
		WillReturnRows(sqlmock.NewRows(append(userColumns(), "tenant_key")))

	_, _, err := repo.GetByLogin(context.Background(), "ACME", "nobody@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListScopedToTenants(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tenant_id IN (?, ?)")).
		WithArgs(int64(3), int64(7), 20, 0).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-1", int64(3), "a@example.com", "A", "staff",
				"s", "d", true, now, now, nil).
			AddRow("user-2", int64(7), "b@example.com", "B", "client",
				"s", "d", true, now, now, nil))

	users, total, err := repo.List(context.Background(), []int64{3, 7}, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, int64(3), users[0].TenantID)
	assert.Equal(t, int64(7), users[1].TenantID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmptyScopeSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	users, total, err := repo.List(context.Background(), nil, 20, 0)
	require.NoError(t, err)

	assert.Empty(t, users)
	assert.Zero(t, total)

	// No SQL may run for an empty scope.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActiveNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET active = $2")).
		WithArgs("missing-id", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "missing-id", false)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET deleted_at = NOW()")).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SoftDelete(context.Background(), "user-1")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
