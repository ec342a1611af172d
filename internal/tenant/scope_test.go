// AngelaMos | 2026
// scope_test.go

package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/copperline/internal/middleware"
)

type stubCatalog struct {
	ids []int64
	err error
}

func (s *stubCatalog) ListIDs(_ context.Context) ([]int64, error) {
	return s.ids, s.err
}

func TestResolveOperatorElevatedSeesAllTenants(t *testing.T) {
	resolver := NewResolver(&stubCatalog{ids: []int64{1, 7, 12}}, "OPS")

	for _, role := range []string{"administrator", "project_manager", "staff"} {
		claims := &middleware.Claims{
			UserID:    "u1",
			Role:      role,
			TenantID:  1,
			TenantKey: "OPS",
		}

		scope, err := resolver.Resolve(context.Background(), claims)
		require.NoError(t, err, "role %s", role)
		assert.Equal(t, []int64{1, 7, 12}, scope.IDs(), "role %s", role)
	}
}

func TestResolveClientOnOperatorTenantSeesOwnOnly(t *testing.T) {
	resolver := NewResolver(&stubCatalog{ids: []int64{1, 7, 12}}, "OPS")

	claims := &middleware.Claims{
		UserID:    "u2",
		Role:      "client",
		TenantID:  1,
		TenantKey: "OPS",
	}

	scope, err := resolver.Resolve(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, scope.IDs())
}

func TestResolveElevatedRoleOnOrdinaryTenantSeesOwnOnly(t *testing.T) {
	resolver := NewResolver(&stubCatalog{ids: []int64{1, 7, 12}}, "OPS")

	claims := &middleware.Claims{
		UserID:    "u3",
		Role:      "administrator",
		TenantID:  7,
		TenantKey: "CUSTA",
	}

	scope, err := resolver.Resolve(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, scope.IDs())
	assert.True(t, scope.Contains(7))
	assert.False(t, scope.Contains(1))
}

func TestResolveNilClaimsYieldsEmptyScope(t *testing.T) {
	resolver := NewResolver(&stubCatalog{ids: []int64{1, 7}}, "OPS")

	scope, err := resolver.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
	assert.Empty(t, scope.IDs())
}

func TestResolveZeroTenantYieldsEmptyScope(t *testing.T) {
	resolver := NewResolver(&stubCatalog{ids: []int64{1, 7}}, "OPS")

	claims := &middleware.Claims{UserID: "u4", Role: "staff"}

	scope, err := resolver.Resolve(context.Background(), claims)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
}

func TestResolveCatalogErrorPropagates(t *testing.T) {
	resolver := NewResolver(
		&stubCatalog{err: errors.New("connection refused")},
		"OPS",
	)

	claims := &middleware.Claims{
		UserID:    "u5",
		Role:      "administrator",
		TenantID:  1,
		TenantKey: "OPS",
	}

	_, err := resolver.Resolve(context.Background(), claims)
	require.Error(t, err)
}

func TestScopeBindSingleTenantIgnoresRequest(t *testing.T) {
	scope := NewScope([]int64{7})

	// Whatever the body says, a single-tenant caller writes to their own
	// tenant.
	for _, requested := range []int64{0, 7, 12} {
		id, err := scope.Bind(requested)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	}
}

func TestScopeBindCrossTenantRequiresTarget(t *testing.T) {
	scope := NewScope([]int64{1, 7, 12})

	_, err := scope.Bind(0)
	require.Error(t, err)

	id, err := scope.Bind(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = scope.Bind(99)
	require.Error(t, err)
}

func TestScopeContains(t *testing.T) {
	scope := NewScope([]int64{3, 9})

	assert.True(t, scope.Contains(3))
	assert.True(t, scope.Contains(9))
	assert.False(t, scope.Contains(4))
	assert.False(t, scope.Empty())
}
