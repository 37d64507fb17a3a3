package role

import (
	"context"
	"fmt"

	"go-erp/internal/common/models"
)

// RoleStore is the read side of the membership store the role API needs.
type RoleStore interface {
	ListRoles(ctx context.Context, companyID int64) ([]Role, error)
	FindRole(ctx context.Context, companyID, roleID int64) (*Role, error)
}

type RoleService interface {
	ListRoles(ctx context.Context) ([]Summary, error)
	GetRole(ctx context.Context, id int64) (*Summary, error)
}

type RoleServiceImpl struct {
	Store RoleStore
}

func NewRoleService(store RoleStore) RoleService {
	return &RoleServiceImpl{Store: store}
}

func tenantFromContext(ctx context.Context) (int64, error) {
	companyID, ok := ctx.Value(models.TenantIDKey).(int64)
	if !ok || companyID <= 0 {
		return 0, fmt.Errorf("tenant context missing: %w", models.ErrMissingTenantID)
	}
	return companyID, nil
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]Summary, error) {
	companyID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := s.Store.ListRoles(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list roles of company %d: %w", companyID, err)
	}

	out := make([]Summary, 0, len(roles))
	for i := range roles {
		out = append(out, roles[i].Summary())
	}
	return out, nil
}

// GetRole returns (nil, nil) when the company has no such role.
func (s *RoleServiceImpl) GetRole(ctx context.Context, id int64) (*Summary, error) {
	companyID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.Store.FindRole(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("find role %d: %w", id, err)
	}
	if r == nil {
		return nil, nil
	}
	summary := r.Summary()
	return &summary, nil
}
