package permission

import (
	"strings"

	"go-erp/internal/common/models"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PermissionController struct {
	Resolver middleware.PermissionResolver
	Logger   *zap.Logger
}

func NewPermissionController(resolver *Resolver, logger *zap.Logger) *PermissionController {
	return &PermissionController{
		Resolver: resolver,
		Logger:   logger,
	}
}

type CheckResult struct {
	Permission string `json:"permission"`
	Valid      bool   `json:"valid"`
	Granted    bool   `json:"granted"`
}

type CheckResponse struct {
	Allowed bool          `json:"allowed"`
	Results []CheckResult `json:"results"`
}

// GetMyPermissions godoc
// @Summary      Get my permissions
// @Description  The caller's resolved permission set in the current company
// @Tags         permissions
// @Produce      json
// @Param        X-Company-Id  header  int  true  "Company ID"
// @Success      200  {object}  models.ApiResponse
// @Failure      400  {object}  models.ApiResponse
// @Failure      403  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/permissions/me [get]
func (ctrl *PermissionController) GetMyPermissions(c *fiber.Ctx) error {
	set, err := middleware.ResolvedPermissions(c, ctrl.Resolver)
	if err != nil {
		ctrl.Logger.Error("Failed to resolve permissions", zap.Error(err))
		return middleware.Fail(c, err)
	}
	return c.JSON(models.Success(set))
}

// CheckPermissions godoc
// @Summary      Check permissions
// @Description  Evaluates a comma separated list of "module.action" strings with OR semantics
// @Tags         permissions
// @Produce      json
// @Param        X-Company-Id  header  int     true  "Company ID"
// @Param        permission    query   string  true  "e.g. role.canView,payroll.*"
// @Success      200  {object}  models.ApiResponse
// @Failure      400  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/permissions/check [get]
func (ctrl *PermissionController) CheckPermissions(c *fiber.Ctx) error {
	var raws []string
	for _, part := range strings.Split(c.Query("permission"), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			raws = append(raws, trimmed)
		}
	}
	if len(raws) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.Failure(fiber.StatusBadRequest, "permission query parameter required"))
	}

	set, err := middleware.ResolvedPermissions(c, ctrl.Resolver)
	if err != nil {
		ctrl.Logger.Error("Failed to resolve permissions", zap.Error(err))
		return middleware.Fail(c, err)
	}

	reqs, _ := models.ParseRequirements(raws...)
	resp := CheckResponse{Allowed: set.Allows(reqs), Results: make([]CheckResult, 0, len(reqs))}
	for _, req := range reqs {
		resp.Results = append(resp.Results, CheckResult{
			Permission: req.String(),
			Valid:      req.Valid(),
			Granted:    req.Valid() && (set.Bypass() || set.Satisfies(req)),
		})
	}
	return c.JSON(models.Success(resp))
}
