package module

import (
	"go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type ModuleController struct {
	Registry *Registry
}

func NewModuleController(registry *Registry) *ModuleController {
	return &ModuleController{
		Registry: registry,
	}
}

// ListModules godoc
// @Summary      List active modules
// @Description  Active catalog modules, sorted by their declared order
// @Tags         modules
// @Produce      json
// @Success      200  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/modules [get]
func (ctrl *ModuleController) ListModules(c *fiber.Ctx) error {
	return c.JSON(models.Success(fiber.Map{
		"source":  ctrl.Registry.Source(),
		"modules": ctrl.Registry.ActiveModules(),
	}))
}

// GetModule godoc
// @Summary      Get a module
// @Tags         modules
// @Produce      json
// @Param        key  path  string  true  "Module key"
// @Success      200  {object}  models.ApiResponse
// @Failure      404  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/modules/{key} [get]
func (ctrl *ModuleController) GetModule(c *fiber.Ctx) error {
	m, ok := ctrl.Registry.Module(c.Params("key"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(models.Failure(fiber.StatusNotFound, "module not found"))
	}
	return c.JSON(models.Success(m))
}
