// AngelaMos | 2026
// scope.go

package tenant

import (
	"context"
	"fmt"
	"sort"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/middleware"
)

// Scope is the set of tenant ids a request may read or write. Every
// repository list query filters by it and every write binds its tenant id
// from it, never from the request body.
type Scope struct {
	ids map[int64]struct{}
}

func NewScope(ids []int64) Scope {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{ids: set}
}

func (s Scope) Contains(tenantID int64) bool {
	_, ok := s.ids[tenantID]
	return ok
}

func (s Scope) Empty() bool {
	return len(s.ids) == 0
}

// Bind decides which tenant a write lands in. A single-tenant scope wins
// outright and any requested id is ignored, so ordinary callers cannot
// steer a write by editing the request body. A cross-tenant scope must
// name a target, and it has to be inside the scope.
func (s Scope) Bind(requested int64) (int64, error) {
	if len(s.ids) == 1 {
		for id := range s.ids {
			return id, nil
		}
	}

	if requested == 0 {
		return 0, fmt.Errorf("bind tenant: target tenant required: %w", core.ErrInvalidInput)
	}

	if !s.Contains(requested) {
		return 0, fmt.Errorf("bind tenant: out of scope: %w", core.ErrForbidden)
	}

	return requested, nil
}

func (s Scope) IDs() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type catalog interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// Resolver turns verified claims into a tenant scope. Elevated roles on
// the operator tenant see every tenant; everyone else, including an
// administrator of an ordinary tenant, sees only their own.
type Resolver struct {
	catalog     catalog
	operatorKey string
}

func NewResolver(repo catalog, operatorKey string) *Resolver {
	return &Resolver{
		catalog:     repo,
		operatorKey: operatorKey,
	}
}

func (r *Resolver) Resolve(
	ctx context.Context,
	claims *middleware.Claims,
) (Scope, error) {
	if claims == nil || claims.TenantID == 0 {
		return NewScope(nil), nil
	}

	if claims.TenantKey == r.operatorKey &&
		middleware.IsElevatedRole(claims.Role) {
		ids, err := r.catalog.ListIDs(ctx)
		if err != nil {
			return Scope{}, fmt.Errorf("resolve scope: %w", err)
		}
		return NewScope(ids), nil
	}

	return NewScope([]int64{claims.TenantID}), nil
}
