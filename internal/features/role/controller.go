package role

import (
	"strconv"

	"go-erp/internal/common/models"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RoleController struct {
	Service RoleService
	Logger  *zap.Logger
}

func NewRoleController(service RoleService, logger *zap.Logger) *RoleController {
	return &RoleController{Service: service, Logger: logger}
}

// ListRoles godoc
// @Summary      List roles
// @Description  Roles of the current company with their decoded policies
// @Tags         roles
// @Produce      json
// @Param        X-Company-Id  header  int  true  "Company ID"
// @Success      200  {object}  models.ApiResponse
// @Failure      403  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/role [get]
func (ctrl *RoleController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctrl.Service.ListRoles(c.UserContext())
	if err != nil {
		ctrl.Logger.Error("Failed to list roles", zap.Error(err))
		return middleware.Fail(c, err)
	}
	return c.JSON(models.Success(roles))
}

// GetRole godoc
// @Summary      Get a role
// @Tags         roles
// @Produce      json
// @Param        X-Company-Id  header  int  true  "Company ID"
// @Param        id            path    int  true  "Role ID"
// @Success      200  {object}  models.ApiResponse
// @Failure      404  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/role/{id} [get]
func (ctrl *RoleController) GetRole(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.Failure(fiber.StatusBadRequest, "invalid role id"))
	}

	r, err := ctrl.Service.GetRole(c.UserContext(), id)
	if err != nil {
		ctrl.Logger.Error("Failed to get role", zap.Int64("roleId", id), zap.Error(err))
		return middleware.Fail(c, err)
	}
	if r == nil {
		return c.Status(fiber.StatusNotFound).JSON(models.Failure(fiber.StatusNotFound, "role not found"))
	}
	return c.JSON(models.Success(r))
}
