package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	CapabilityView   = "canView"
	CapabilityCreate = "canCreate"
	CapabilityEdit   = "canEdit"
	CapabilityDelete = "canDelete"
)

// ModuleGrant is the capability set a role holds on one module.
type ModuleGrant struct {
	CanView   bool            `json:"canView"`
	CanCreate bool            `json:"canCreate"`
	CanEdit   bool            `json:"canEdit"`
	CanDelete bool            `json:"canDelete"`
	Extra     map[string]bool `json:"extra,omitempty"`
}

// UnmarshalJSON accepts extra capabilities either nested under "extra" or as
// sibling boolean keys of the four base flags. Base flags that are not booleans
// make the whole grant malformed, as does any name spelled twice in different case.
func (g *ModuleGrant) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("%w: module grant is null", ErrMalformedRolePayload)
	}

	seen := make(map[string]string, len(raw))
	claim := func(name string) error {
		folded := strings.ToLower(name)
		if prev, dup := seen[folded]; dup {
			return fmt.Errorf("%w: capability %q duplicates %q", ErrMalformedRolePayload, name, prev)
		}
		seen[folded] = name
		return nil
	}

	out := ModuleGrant{Extra: map[string]bool{}}
	var nested map[string]bool
	for key, value := range raw {
		if err := claim(key); err != nil {
			return err
		}
		switch strings.ToLower(key) {
		case "canview":
			if err := json.Unmarshal(value, &out.CanView); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformedRolePayload, key, err)
			}
		case "cancreate":
			if err := json.Unmarshal(value, &out.CanCreate); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformedRolePayload, key, err)
			}
		case "canedit":
			if err := json.Unmarshal(value, &out.CanEdit); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformedRolePayload, key, err)
			}
		case "candelete":
			if err := json.Unmarshal(value, &out.CanDelete); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformedRolePayload, key, err)
			}
		case "extra":
			if err := json.Unmarshal(value, &nested); err != nil {
				return fmt.Errorf("%w: extra: %v", ErrMalformedRolePayload, err)
			}
		default:
			var allowed bool
			if err := json.Unmarshal(value, &allowed); err != nil {
				// non-boolean siblings carry no capability
				continue
			}
			out.Extra[key] = allowed
		}
	}
	// nested names share one namespace with the top-level keys
	for name, allowed := range nested {
		if err := claim(name); err != nil {
			return err
		}
		out.Extra[name] = allowed
	}
	*g = out
	return nil
}

// Has reports whether the named capability exists and is granted.
func (g ModuleGrant) Has(capability string) bool {
	switch strings.ToLower(capability) {
	case "canview":
		return g.CanView
	case "cancreate":
		return g.CanCreate
	case "canedit":
		return g.CanEdit
	case "candelete":
		return g.CanDelete
	}
	granted, matches := false, 0
	for name, allowed := range g.Extra {
		if strings.EqualFold(name, capability) {
			granted = allowed
			matches++
		}
	}
	// names differing only in case are ambiguous and deny
	return matches == 1 && granted
}

// HasAll reports whether all four base capabilities are granted.
func (g ModuleGrant) HasAll() bool {
	return g.CanView && g.CanCreate && g.CanEdit && g.CanDelete
}

// ResolvedPermissions is the capability snapshot for one (user, company)
// pair. It lives for a single request and is never persisted.
type ResolvedPermissions struct {
	IsAdmin      bool                   `json:"isAdmin"`
	IsSystemRole bool                   `json:"isSystemRole"`
	Modules      map[string]ModuleGrant `json:"modules"`
}

func DenyAll() *ResolvedPermissions {
	return &ResolvedPermissions{Modules: map[string]ModuleGrant{}}
}

func SystemRolePermissions() *ResolvedPermissions {
	return &ResolvedPermissions{IsAdmin: true, IsSystemRole: true, Modules: map[string]ModuleGrant{}}
}

// Bypass is true for sets that skip per-module evaluation.
func (p *ResolvedPermissions) Bypass() bool {
	return p != nil && (p.IsAdmin || p.IsSystemRole)
}

// Module looks up a module grant by key, ignoring case. Keys that differ
// only in case make the lookup ambiguous and it reports no grant.
func (p *ResolvedPermissions) Module(key string) (ModuleGrant, bool) {
	if p == nil {
		return ModuleGrant{}, false
	}
	var found ModuleGrant
	matches := 0
	for name, grant := range p.Modules {
		if strings.EqualFold(name, key) {
			found = grant
			matches++
		}
	}
	if matches != 1 {
		return ModuleGrant{}, false
	}
	return found, true
}

// Satisfies evaluates one requirement against the module grants only.
func (p *ResolvedPermissions) Satisfies(req Requirement) bool {
	if !req.Valid() {
		return false
	}
	grant, ok := p.Module(req.Module)
	if !ok {
		return false
	}
	if req.Action.Kind == ActionWildcard {
		return grant.HasAll()
	}
	return grant.Has(req.Action.Name)
}

// SatisfiesAny is the OR across a requirement list. An empty list is never satisfied.
func (p *ResolvedPermissions) SatisfiesAny(reqs []Requirement) bool {
	for _, req := range reqs {
		if p.Satisfies(req) {
			return true
		}
	}
	return false
}

// Allows combines the admin bypass with SatisfiesAny.
func (p *ResolvedPermissions) Allows(reqs []Requirement) bool {
	return p.Bypass() || p.SatisfiesAny(reqs)
}
