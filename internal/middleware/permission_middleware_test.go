package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go-erp/internal/common/models"
	"go-erp/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver struct {
	set       *models.ResolvedPermissions
	err       error
	panicWith interface{}
	calls     int
}

func (f *fakeResolver) Resolve(ctx context.Context, userID, companyID int64) (*models.ResolvedPermissions, error) {
	f.calls++
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.set, f.err
}

type fakeCatalog map[string][]string

func (f fakeCatalog) PermissionKeysForRoute(moduleKey, method, path string) []string {
	return f[method+" "+path]
}

// roleViewer holds canView and nothing else on the role module.
func roleViewer() *models.ResolvedPermissions {
	return &models.ResolvedPermissions{Modules: map[string]models.ModuleGrant{
		"role": {CanView: true},
	}}
}

func newGuardApp(guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Authenticate(fakeVerifier{}, zap.NewNop()))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(models.TenantIDKey, int64(9))
		return c.Next()
	})
	app.Get("/*", guard, okHandler)
	return app
}

func TestRequireScenarios(t *testing.T) {
	fullPayroll := &models.ResolvedPermissions{Modules: map[string]models.ModuleGrant{
		"payroll": {CanView: true, CanCreate: true, CanEdit: true, CanDelete: true},
		"hr":      {CanView: true, CanCreate: true, CanEdit: false, CanDelete: true},
	}}

	tests := []struct {
		name   string
		set    *models.ResolvedPermissions
		perms  []string
		status int
	}{
		{name: "single missing capability", set: roleViewer(), perms: []string{"role.canCreate"}, status: http.StatusForbidden},
		{name: "or across requirements", set: roleViewer(), perms: []string{"role.canView", "role.canCreate"}, status: http.StatusOK},
		{name: "other module absent", set: roleViewer(), perms: []string{"b.canEdit", "role.canView"}, status: http.StatusOK},
		{name: "malformed only", set: roleViewer(), perms: []string{"role"}, status: http.StatusForbidden},
		{name: "empty list", set: roleViewer(), perms: nil, status: http.StatusForbidden},
		{name: "wildcard with all flags", set: fullPayroll, perms: []string{"payroll.*"}, status: http.StatusOK},
		{name: "wildcard missing a flag", set: fullPayroll, perms: []string{"hr.*"}, status: http.StatusForbidden},
		{name: "deny-all", set: models.DenyAll(), perms: []string{"role.canView"}, status: http.StatusForbidden},
		{name: "nil set is deny-all", set: nil, perms: []string{"role.canView"}, status: http.StatusForbidden},
		{name: "tenant admin bypasses", set: &models.ResolvedPermissions{IsAdmin: true}, perms: []string{"ledger.canClose"}, status: http.StatusOK},
		{name: "system role bypasses", set: models.SystemRolePermissions(), perms: []string{"x.*"}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewPermissionGuard(&fakeResolver{set: tt.set}, zap.NewNop(), metrics.New())
			app := newGuardApp(guard.Require(tt.perms...))

			status, body := do(t, app, request{path: "/api/role", token: "user-5"})

			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, 403, body.Code)
				assert.Equal(t, "insufficient permission", body.Message)
				assert.Nil(t, body.Data)
			}
		})
	}
}

func TestRequireLeavesAnonymousToRequireAuth(t *testing.T) {
	resolver := &fakeResolver{set: models.DenyAll()}
	guard := NewPermissionGuard(resolver, zap.NewNop(), nil)

	app := newGuardApp(guard.Require("role.canView"))
	status, _ := do(t, app, request{path: "/api/role"})
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, resolver.calls)

	protected := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	protected.Use(Authenticate(fakeVerifier{}, zap.NewNop()))
	protected.Get("/api/role", RequireAuth(), guard.Require("role.canView"), okHandler)
	status, body := do(t, protected, request{path: "/api/role"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "authentication required", body.Message)
}

func TestRequireDeniesIdentityWithoutUser(t *testing.T) {
	resolver := &fakeResolver{set: models.SystemRolePermissions()}
	guard := NewPermissionGuard(resolver, zap.NewNop(), nil)
	app := newGuardApp(guard.Require("role.canView"))

	status, body := do(t, app, request{path: "/api/role", token: "user-0"})

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "insufficient permission", body.Message)
	assert.Zero(t, resolver.calls)
}

func TestRequireFaultsBecome500(t *testing.T) {
	tests := []struct {
		name     string
		resolver *fakeResolver
	}{
		{name: "resolver error", resolver: &fakeResolver{err: errors.New("db timeout")}},
		{name: "resolver panic", resolver: &fakeResolver{panicWith: "nil map"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			guard := NewPermissionGuard(tt.resolver, zap.NewNop(), m)
			app := newGuardApp(guard.Require("role.canView"))

			status, body := do(t, app, request{path: "/api/role", token: "user-5"})

			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, "internal server error", body.Message)
			assert.NotContains(t, body.Message, "db timeout")
			assert.Equal(t, 1.0, decisionCount(t, m, metrics.OutcomeErrored))
		})
	}
}

func TestResolvedPermissionsIsCachedPerRequest(t *testing.T) {
	resolver := &fakeResolver{set: roleViewer()}
	guard := NewPermissionGuard(resolver, zap.NewNop(), nil)

	var first, second *models.ResolvedPermissions
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Authenticate(fakeVerifier{}, zap.NewNop()))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(models.TenantIDKey, int64(9))
		return c.Next()
	})
	app.Get("/api/role",
		guard.Require("role.canView"),
		guard.Require("role.canView", "role.canEdit"),
		func(c *fiber.Ctx) error {
			var err error
			if first, err = ResolvedPermissions(c, resolver); err != nil {
				return err
			}
			if second, err = ResolvedPermissions(c, resolver); err != nil {
				return err
			}
			return okHandler(c)
		},
	)

	status, _ := do(t, app, request{path: "/api/role", token: "user-5"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, resolver.calls, "resolver runs once per request")
	assert.Same(t, first, second)

	// a second request resolves again
	status, _ = do(t, app, request{path: "/api/role", token: "user-5"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, resolver.calls)
}

func TestRequireRoute(t *testing.T) {
	catalog := fakeCatalog{
		"GET /api/role":   {"canView"},
		"GET /api/role/1": {"canView", "canEdit"},
	}

	tests := []struct {
		name   string
		set    *models.ResolvedPermissions
		path   string
		status int
	}{
		{name: "route key granted", set: roleViewer(), path: "/api/role", status: http.StatusOK},
		{name: "trailing slash resolves like the bare route", set: roleViewer(), path: "/api/role/", status: http.StatusOK},
		{name: "trailing slash on a templated route", set: &models.ResolvedPermissions{Modules: map[string]models.ModuleGrant{"role": {CanEdit: true}}}, path: "/api/role/1/", status: http.StatusOK},
		{name: "any key suffices", set: &models.ResolvedPermissions{Modules: map[string]models.ModuleGrant{"role": {CanEdit: true}}}, path: "/api/role/1", status: http.StatusOK},
		{name: "key not granted", set: &models.ResolvedPermissions{Modules: map[string]models.ModuleGrant{"role": {CanCreate: true}}}, path: "/api/role", status: http.StatusForbidden},
		{name: "route not in catalog", set: roleViewer(), path: "/api/role/unknown", status: http.StatusForbidden},
		{name: "admin on uncatalogued route", set: &models.ResolvedPermissions{IsAdmin: true}, path: "/api/role/unknown", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewPermissionGuard(&fakeResolver{set: tt.set}, zap.NewNop(), nil)
			app := newGuardApp(guard.RequireRoute(catalog, "role"))

			status, _ := do(t, app, request{path: tt.path, token: "user-5"})
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		set    *models.ResolvedPermissions
		status int
	}{
		{name: "tenant admin", set: &models.ResolvedPermissions{IsAdmin: true}, status: http.StatusOK},
		{name: "system role", set: models.SystemRolePermissions(), status: http.StatusOK},
		{name: "ordinary role", set: roleViewer(), status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewPermissionGuard(&fakeResolver{set: tt.set}, zap.NewNop(), nil)
			app := newGuardApp(guard.RequireAdmin())

			status, _ := do(t, app, request{path: "/api/settings", token: "user-5"})
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestDecisionMetrics(t *testing.T) {
	m := metrics.New()
	guard := NewPermissionGuard(&fakeResolver{set: roleViewer()}, zap.NewNop(), m)
	app := newGuardApp(guard.Require("role.canCreate"))

	do(t, app, request{path: "/api/role", token: "user-5"})
	do(t, app, request{path: "/api/role", token: "user-5"})

	assert.Equal(t, 2.0, decisionCount(t, m, metrics.OutcomeDenied))
}

func TestRoutePath(t *testing.T) {
	tests := map[string]string{
		"/":           "/",
		"/api/role":   "/api/role",
		"/api/role/":  "/api/role",
		"/api/role//": "/api/role",
		"":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, routePath(in), in)
	}
}

func decisionCount(t *testing.T, m *metrics.Metrics, outcome string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "authz_decisions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
