package role

import (
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleApi struct {
	controller *RoleController
	guard      *middleware.PermissionGuard
	catalog    middleware.RouteCatalog
}

func NewRoleApi(controller *RoleController, guard *middleware.PermissionGuard, catalog middleware.RouteCatalog) *RoleApi {
	return &RoleApi{
		controller: controller,
		guard:      guard,
		catalog:    catalog,
	}
}

// Setup registers role routes
func (h *RoleApi) Setup(app *fiber.App) {
	roles := app.Group("/api/role", middleware.RequireAuth())

	// the list route is authorized through the module catalog
	roles.Get("/", h.guard.RequireRoute(h.catalog, "role"), h.controller.ListRoles)
	roles.Get("/:id", h.guard.Require("role.canView", "role.*"), h.controller.GetRole)
}
