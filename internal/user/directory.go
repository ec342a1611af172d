// AngelaMos | 2026
// directory.go

package user

import (
	"context"
	"fmt"

	"github.com/copperline/copperline/internal/auth"
)

// Directory adapts the user repository to the credential lookups the
// login flow needs, without exposing the full repository surface.
type Directory struct {
	repo    *Repository
	keyByID TenantKeyFunc
}

// TenantKeyFunc resolves a tenant id to its key for profile lookups that
// do not come through the login join.
type TenantKeyFunc func(ctx context.Context, tenantID int64) (string, error)

func NewDirectory(repo *Repository, resolve TenantKeyFunc) *Directory {
	return &Directory{repo: repo, keyByID: resolve}
}

func (d *Directory) GetByLogin(
	ctx context.Context,
	tenantKey string,
	email string,
) (*auth.Credentials, error) {
	u, key, err := d.repo.GetByLogin(ctx, tenantKey, email)
	if err != nil {
		return nil, err
	}

	return credentials(u, key), nil
}

func (d *Directory) GetByID(
	ctx context.Context,
	id string,
) (*auth.Credentials, error) {
	u, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := d.keyByID(ctx, u.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant key: %w", err)
	}

	return credentials(u, key), nil
}

func credentials(u *User, tenantKey string) *auth.Credentials {
	return &auth.Credentials{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		TenantID:       u.TenantID,
		TenantKey:      tenantKey,
		Salt:           &u.Salt,
		PasswordDigest: &u.PasswordDigest,
		Active:         u.Active,
	}
}
