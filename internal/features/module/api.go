package module

import (
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ModuleApi struct {
	moduleController *ModuleController
}

func NewModuleApi(moduleController *ModuleController) *ModuleApi {
	return &ModuleApi{
		moduleController: moduleController,
	}
}

// Setup registers all module-related routes
func (h *ModuleApi) Setup(app *fiber.App) {
	// Any member of the current company may read the catalog
	modules := app.Group("/api/modules", middleware.RequireAuth())

	modules.Get("/", h.moduleController.ListModules)
	modules.Get("/:key", h.moduleController.GetModule)
}
