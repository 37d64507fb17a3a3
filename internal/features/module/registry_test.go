package module

import (
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func testModules() []ModuleConfig {
	return []ModuleConfig{
		{
			Key:   "payroll",
			Name:  "Payroll",
			Order: 20,
			Permissions: []PermissionConfig{
				{
					Key:       "canView",
					Endpoints: []string{"/api/payroll", "/api/payroll/{id}"},
					Routes: []RouteConfig{
						{Method: "GET", Path: "/api/payroll"},
						{Method: "GET", Path: "/api/payroll/{id}"},
					},
				},
				{
					Key:    "canEdit",
					Routes: []RouteConfig{{Method: "put", Path: "/api/payroll/{id}"}},
				},
				{
					Key:    "canApprove",
					Routes: []RouteConfig{{Method: "POST", Path: "/api/payroll/{id}/approve"}, {Method: "PUT", Path: "/api/payroll/*"}},
				},
			},
		},
		{Key: "reports", Name: "Reports", Order: 10},
		{Key: "archive", Name: "Archive", Order: 0, IsActive: boolPtr(false)},
		{Key: "hr", Name: "HR", Order: 10},
		{Key: "PAYROLL", Name: "Duplicate", Order: 99},
		{Key: "  ", Name: "Blank"},
	}
}

func TestActiveModulesOrder(t *testing.T) {
	r := NewRegistry(testModules(), "test")

	var keys []string
	for _, m := range r.ActiveModules() {
		keys = append(keys, m.Key)
	}
	want := []string{"reports", "hr", "payroll"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("ActiveModules keys = %v, want %v", keys, want)
	}
}

func TestModuleLookup(t *testing.T) {
	r := NewRegistry(testModules(), "test")

	m, ok := r.Module("PayRoll")
	if !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if m.Name != "Payroll" {
		t.Errorf("duplicate key replaced the first declaration: got %q", m.Name)
	}

	if _, ok := r.Module("missing"); ok {
		t.Error("absent module reported as present")
	}

	// returned configs are copies
	m.Permissions[0].Key = "mutated"
	again, _ := r.Module("payroll")
	if again.Permissions[0].Key != "canView" {
		t.Error("caller mutation leaked into the registry")
	}
}

func TestIsRouteAllowed(t *testing.T) {
	r := NewRegistry(testModules(), "test")

	tests := []struct {
		name                      string
		module, key, method, path string
		want                      bool
	}{
		{"exact route", "payroll", "canView", "GET", "/api/payroll", true},
		{"templated route", "payroll", "canView", "GET", "/api/payroll/12", true},
		{"method ignores case", "payroll", "canEdit", "PUT", "/api/payroll/12", true},
		{"wrong method", "payroll", "canView", "POST", "/api/payroll", false},
		{"permission key ignores case", "payroll", "CANVIEW", "get", "/api/payroll", true},
		{"unknown permission", "payroll", "canDelete", "DELETE", "/api/payroll/12", false},
		{"unknown module", "ledger", "canView", "GET", "/api/payroll", false},
		{"no match", "payroll", "canView", "GET", "/api/payroll/12/lines", false},
		{"later pattern matches", "payroll", "canApprove", "PUT", "/api/payroll/3/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsRouteAllowed(tt.module, tt.key, tt.method, tt.path); got != tt.want {
				t.Errorf("IsRouteAllowed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEndpointAllowed(t *testing.T) {
	r := NewRegistry(testModules(), "test")

	if !r.IsEndpointAllowed("payroll", "canView", "/api/payroll/5") {
		t.Error("legacy endpoint pattern should match")
	}
	// canEdit only declares method-qualified routes
	if r.IsEndpointAllowed("payroll", "canEdit", "/api/payroll/5") {
		t.Error("routes must not be consulted by the legacy check")
	}
	if r.IsEndpointAllowed("nope", "canView", "/api/payroll") {
		t.Error("unknown module must not match")
	}
}

func TestPermissionKeysForRoute(t *testing.T) {
	r := NewRegistry(testModules(), "test")

	got := r.PermissionKeysForRoute("payroll", "PUT", "/api/payroll/9")
	want := []string{"canEdit", "canApprove"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PermissionKeysForRoute = %v, want %v", got, want)
	}

	if keys := r.PermissionKeysForRoute("payroll", "DELETE", "/api/payroll/9"); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
	if keys := r.PermissionKeysForRoute("missing", "GET", "/"); keys != nil {
		t.Errorf("expected nil for unknown module, got %v", keys)
	}
}

func TestDefaultModules(t *testing.T) {
	r := NewRegistry(DefaultModules(), SourceBuiltin)

	if len(r.ActiveModules()) == 0 {
		t.Fatal("built-in catalog must contain at least one module")
	}
	if !r.IsRouteAllowed("role", "canView", "GET", "/api/role/1") {
		t.Error("built-in role module should authorize GET /api/role/{id}")
	}
}
