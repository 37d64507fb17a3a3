package permission

import (
	"context"
	"fmt"

	"go-erp/internal/common/models"
	"go-erp/internal/features/membership"

	"go.uber.org/zap"
)

// AssignmentFinder is the part of the membership store the resolver reads.
type AssignmentFinder interface {
	FindAssignment(ctx context.Context, userID, companyID int64) (*membership.Assignment, error)
}

// Resolver computes the permission set of a user inside a company. It is a
// pure query: nothing but logging happens on the side.
type Resolver struct {
	Store  AssignmentFinder
	Logger *zap.Logger
}

func NewResolver(store AssignmentFinder, logger *zap.Logger) *Resolver {
	return &Resolver{Store: store, Logger: logger}
}

// Resolve fails closed. Missing memberships and undecodable role payloads
// produce a deny-all set; only store failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, userID, companyID int64) (*models.ResolvedPermissions, error) {
	if userID <= 0 || companyID <= 0 {
		return models.DenyAll(), nil
	}

	assignment, err := r.Store.FindAssignment(ctx, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	if assignment == nil {
		r.Logger.Debug("no membership, denying all",
			zap.Int64("userId", userID), zap.Int64("tenantId", companyID))
		return models.DenyAll(), nil
	}

	if assignment.Role == nil {
		r.Logger.Error("membership references a missing role, denying all",
			zap.Int64("userId", userID),
			zap.Int64("tenantId", companyID),
			zap.Int64("roleId", assignment.RoleID),
			zap.Error(models.ErrMalformedRolePayload),
		)
		return models.DenyAll(), nil
	}

	// system roles ignore whatever payload they carry
	if assignment.Role.IsSystem {
		return models.SystemRolePermissions(), nil
	}

	policy, err := assignment.Role.DecodePolicy()
	if err != nil {
		r.Logger.Error("role policy could not be decoded, denying all",
			zap.Int64("userId", userID),
			zap.Int64("tenantId", companyID),
			zap.Int64("roleId", assignment.Role.ID),
			zap.Error(err),
		)
		return models.DenyAll(), nil
	}

	return &models.ResolvedPermissions{
		IsAdmin:      policy.IsAdmin,
		IsSystemRole: false,
		Modules:      policy.Modules,
	}, nil
}
