package membership

import (
	"time"

	"go-erp/internal/features/role"
)

// Company is a tenant. A set DeletedAt hides it from every access check.
type Company struct {
	ID          int64      `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	OwnerUserID int64      `json:"ownerUserId" bson:"owner_user_id"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	DeletedAt   *time.Time `json:"-" bson:"deleted_at"`
}

// Membership links a user to a company through a role. At most one active
// membership exists per (user, company).
type Membership struct {
	ID        int64     `json:"id" bson:"_id"`
	UserID    int64     `json:"userId" bson:"user_id"`
	CompanyID int64     `json:"companyId" bson:"company_id"`
	RoleID    int64     `json:"roleId" bson:"role_id"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Assignment is an active membership with its role. Role is nil when the
// role record is missing.
type Assignment struct {
	Membership
	Role *role.Role
}

// CompanyMembership is one entry of the caller's company list.
type CompanyMembership struct {
	CompanyID   int64  `json:"companyId"`
	CompanyName string `json:"companyName"`
	RoleID      int64  `json:"roleId"`
	IsOwner     bool   `json:"isOwner"`
}
