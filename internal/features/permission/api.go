package permission

import (
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	Controller *PermissionController
}

func NewPermissionApi(controller *PermissionController) *PermissionApi {
	return &PermissionApi{
		Controller: controller,
	}
}

// Setup registers the permission introspection routes
func (a *PermissionApi) Setup(app *fiber.App) {
	permissions := app.Group("/api/permissions", middleware.RequireAuth())

	permissions.Get("/me", a.Controller.GetMyPermissions)
	permissions.Get("/check", a.Controller.CheckPermissions)
}
