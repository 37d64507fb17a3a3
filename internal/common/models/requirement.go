package models

import (
	"fmt"
	"strings"
)

type ActionKind uint8

const (
	ActionNamed ActionKind = iota
	ActionWildcard
)

// Action is either a named capability or the module wildcard.
type Action struct {
	Kind ActionKind
	Name string
}

var WildcardAction = Action{Kind: ActionWildcard, Name: "*"}

// Requirement is a decoded "module.action" permission string.
type Requirement struct {
	Raw    string
	Module string
	Action Action
	valid  bool
}

func (r Requirement) Valid() bool { return r.valid }

func (r Requirement) String() string { return r.Raw }

// ParseRequirement splits raw on its first dot. A malformed string still
// yields a Requirement, one that never matches, alongside the error.
func ParseRequirement(raw string) (Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	req := Requirement{Raw: trimmed}

	module, action, found := strings.Cut(trimmed, ".")
	if !found {
		return req, fmt.Errorf("%w: %q has no module separator", ErrMalformedPermission, raw)
	}
	module = strings.TrimSpace(module)
	action = strings.TrimSpace(action)
	if module == "" || action == "" {
		return req, fmt.Errorf("%w: %q has an empty module or action", ErrMalformedPermission, raw)
	}

	req.Module = module
	if action == "*" {
		req.Action = WildcardAction
	} else {
		req.Action = Action{Kind: ActionNamed, Name: action}
	}
	req.valid = true
	return req, nil
}

// ParseRequirements decodes every string, keeping malformed entries in place
// and returning their errors separately.
func ParseRequirements(raws ...string) ([]Requirement, []error) {
	reqs := make([]Requirement, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		req, err := ParseRequirement(raw)
		if err != nil {
			errs = append(errs, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, errs
}
