package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestModuleGrantUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    map[string]bool
		wantErr bool
	}{
		{
			name:    "base flags",
			payload: `{"canView":true,"canCreate":false,"canEdit":true,"canDelete":false}`,
			want:    map[string]bool{"canView": true, "canCreate": false, "canEdit": true, "canDelete": false},
		},
		{
			name:    "base flags ignore key case",
			payload: `{"CANVIEW":true,"candelete":true}`,
			want:    map[string]bool{"canView": true, "canDelete": true, "canEdit": false},
		},
		{
			name:    "nested extra",
			payload: `{"canView":true,"extra":{"canApprove":true,"canClose":false}}`,
			want:    map[string]bool{"canApprove": true, "canClose": false},
		},
		{
			name:    "sibling extra",
			payload: `{"canView":false,"canApprove":true}`,
			want:    map[string]bool{"canApprove": true, "canView": false},
		},
		{
			name:    "non boolean sibling is ignored",
			payload: `{"canView":true,"label":"Payroll"}`,
			want:    map[string]bool{"canView": true, "label": false},
		},
		{name: "non boolean base flag", payload: `{"canView":"yes"}`, wantErr: true},
		{name: "base flag in two cases", payload: `{"canView":true,"CANVIEW":false,"canDelete":true}`, wantErr: true},
		{name: "sibling extra in two cases", payload: `{"canApprove":true,"CanApprove":false}`, wantErr: true},
		{name: "nested extra in two cases", payload: `{"extra":{"canClose":true,"CANCLOSE":false}}`, wantErr: true},
		{name: "nested extra shadows base flag", payload: `{"canView":false,"extra":{"canview":true}}`, wantErr: true},
		{name: "nested extra repeats sibling", payload: `{"canApprove":false,"extra":{"canApprove":true}}`, wantErr: true},
		{name: "extra key in two cases", payload: `{"extra":{"a":true},"EXTRA":{"b":true}}`, wantErr: true},
		{name: "malformed extra", payload: `{"extra":[1,2]}`, wantErr: true},
		{name: "null", payload: `null`, wantErr: true},
		{name: "not an object", payload: `[true]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g ModuleGrant
			err := json.Unmarshal([]byte(tt.payload), &g)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got grant %+v", g)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for capability, want := range tt.want {
				if got := g.Has(capability); got != want {
					t.Errorf("Has(%q) = %v, want %v", capability, got, want)
				}
			}
		})
	}
}

func TestModuleGrantCaseDuplicatesAreMalformed(t *testing.T) {
	// map order varies between decodes, so repeat to catch an order-dependent grant
	for i := 0; i < 50; i++ {
		var g ModuleGrant
		err := json.Unmarshal([]byte(`{"canView":true,"CANVIEW":false}`), &g)
		if !errors.Is(err, ErrMalformedRolePayload) {
			t.Fatalf("decode %d: expected ErrMalformedRolePayload, got %v (grant %+v)", i, err, g)
		}
	}
}

func TestAmbiguousLookupsDeny(t *testing.T) {
	g := ModuleGrant{Extra: map[string]bool{"canApprove": true, "CANAPPROVE": false}}
	for _, capability := range []string{"canApprove", "CANAPPROVE", "canapprove"} {
		if g.Has(capability) {
			t.Errorf("Has(%q) = true on case-ambiguous extras", capability)
		}
	}

	set := &ResolvedPermissions{Modules: map[string]ModuleGrant{
		"role": {CanView: true},
		"ROLE": {CanView: false},
	}}
	for _, key := range []string{"role", "ROLE", "Role"} {
		if _, ok := set.Module(key); ok {
			t.Errorf("Module(%q) resolved a case-ambiguous key", key)
		}
	}
	reqs, _ := ParseRequirements("role.canView")
	if set.SatisfiesAny(reqs) {
		t.Error("case-ambiguous module granted a capability")
	}
}

func TestModuleGrantNullIsMalformedPayload(t *testing.T) {
	var g ModuleGrant
	err := g.UnmarshalJSON([]byte(`null`))
	if !errors.Is(err, ErrMalformedRolePayload) {
		t.Fatalf("expected ErrMalformedRolePayload, got %v", err)
	}
}

func TestModuleGrantHasIgnoresCase(t *testing.T) {
	g := ModuleGrant{CanEdit: true, Extra: map[string]bool{"canApprove": true}}

	for _, capability := range []string{"canEdit", "CanEdit", "CANEDIT", "canapprove", "CanApprove"} {
		if !g.Has(capability) {
			t.Errorf("Has(%q) = false, want true", capability)
		}
	}
	if g.Has("canPublish") {
		t.Error("absent capability must not be granted")
	}
}

func TestWildcardNeedsAllBaseFlags(t *testing.T) {
	all := ModuleGrant{CanView: true, CanCreate: true, CanEdit: true, CanDelete: true}
	req, err := ParseRequirement("payroll.*")
	if err != nil {
		t.Fatalf("ParseRequirement: %v", err)
	}

	set := &ResolvedPermissions{Modules: map[string]ModuleGrant{"payroll": all}}
	if !set.Satisfies(req) {
		t.Fatal("wildcard should match when all four flags are set")
	}

	flips := []func(g *ModuleGrant){
		func(g *ModuleGrant) { g.CanView = false },
		func(g *ModuleGrant) { g.CanCreate = false },
		func(g *ModuleGrant) { g.CanEdit = false },
		func(g *ModuleGrant) { g.CanDelete = false },
	}
	for i, flip := range flips {
		g := all
		flip(&g)
		set := &ResolvedPermissions{Modules: map[string]ModuleGrant{"payroll": g}}
		if set.Satisfies(req) {
			t.Errorf("flip %d: wildcard matched with a missing base flag", i)
		}
	}

	// extra capabilities do not stand in for base flags
	partial := ModuleGrant{CanView: true, CanCreate: true, CanEdit: true, Extra: map[string]bool{"canDelete": true}}
	set = &ResolvedPermissions{Modules: map[string]ModuleGrant{"payroll": partial}}
	if set.Satisfies(req) {
		t.Error("wildcard matched through an extra capability")
	}
}

func TestSatisfiesAny(t *testing.T) {
	set := &ResolvedPermissions{Modules: map[string]ModuleGrant{
		"role": {CanView: true},
		"a":    {CanView: true},
	}}

	tests := []struct {
		name  string
		perms []string
		want  bool
	}{
		{name: "single denied", perms: []string{"role.canCreate"}, want: false},
		{name: "or allows", perms: []string{"role.canView", "role.canCreate"}, want: true},
		{name: "missing module is skipped", perms: []string{"b.canEdit", "a.canView"}, want: true},
		{name: "module lookup ignores case", perms: []string{"ROLE.canView"}, want: true},
		{name: "malformed never matches", perms: []string{"role"}, want: false},
		{name: "malformed next to a match", perms: []string{"role", "role.canView"}, want: true},
		{name: "empty list", perms: nil, want: false},
		{name: "absent capability", perms: []string{"role.canApprove"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs, _ := ParseRequirements(tt.perms...)
			if got := set.SatisfiesAny(reqs); got != tt.want {
				t.Errorf("SatisfiesAny(%v) = %v, want %v", tt.perms, got, tt.want)
			}
		})
	}
}

func TestBypassAndAllows(t *testing.T) {
	var nilSet *ResolvedPermissions
	if nilSet.Bypass() {
		t.Error("nil set must not bypass")
	}
	if DenyAll().Bypass() {
		t.Error("deny-all must not bypass")
	}
	if !SystemRolePermissions().Bypass() {
		t.Error("system role must bypass")
	}

	admin := &ResolvedPermissions{IsAdmin: true, Modules: map[string]ModuleGrant{}}
	if !admin.Allows(nil) {
		t.Error("admin is allowed even with no requirements")
	}

	reqs, _ := ParseRequirements("role.canView")
	if DenyAll().Allows(reqs) {
		t.Error("deny-all must deny a non-empty requirement list")
	}
}
