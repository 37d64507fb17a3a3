package role

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-erp/internal/common/models"
)

// Role is a named policy inside one company. Permissions holds the policy
// payload as JSON text; it is only interpreted through DecodePolicy.
type Role struct {
	ID          int64     `json:"id" bson:"_id"`
	CompanyID   int64     `json:"companyId" bson:"company_id"`
	Name        string    `json:"name" bson:"name"`
	IsSystem    bool      `json:"isSystem" bson:"is_system"` // Non-editable, always full admin
	Permissions string    `json:"permissions" bson:"permissions"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Policy is the decoded role payload.
type Policy struct {
	IsAdmin bool                          `json:"isAdmin"`
	Modules map[string]models.ModuleGrant `json:"modules"`
}

// DecodePolicy parses the stored payload. Empty text, JSON null, anything that
// is not an object and module keys repeated in different case are malformed.
func (r *Role) DecodePolicy() (*Policy, error) {
	payload := strings.TrimSpace(r.Permissions)
	if payload == "" || payload == "null" {
		return nil, fmt.Errorf("%w: role %d has no policy", models.ErrMalformedRolePayload, r.ID)
	}

	var policy Policy
	if err := json.Unmarshal([]byte(payload), &policy); err != nil {
		return nil, fmt.Errorf("%w: role %d: %v", models.ErrMalformedRolePayload, r.ID, err)
	}
	if policy.Modules == nil {
		policy.Modules = map[string]models.ModuleGrant{}
	}
	seen := make(map[string]string, len(policy.Modules))
	for key := range policy.Modules {
		folded := strings.ToLower(key)
		if prev, dup := seen[folded]; dup {
			return nil, fmt.Errorf("%w: role %d: module %q duplicates %q", models.ErrMalformedRolePayload, r.ID, key, prev)
		}
		seen[folded] = key
	}
	return &policy, nil
}

// Summary is the role as listed to API callers, with the policy decoded.
type Summary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	IsSystem bool    `json:"isSystem"`
	Policy   *Policy `json:"policy,omitempty"`
}

func (r *Role) Summary() Summary {
	s := Summary{ID: r.ID, Name: r.Name, IsSystem: r.IsSystem}
	if policy, err := r.DecodePolicy(); err == nil {
		s.Policy = policy
	}
	return s
}
