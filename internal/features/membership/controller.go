package membership

import (
	"go-erp/internal/common/models"
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CompanyController struct {
	Access *AccessService
	Logger *zap.Logger
}

func NewCompanyController(access *AccessService, logger *zap.Logger) *CompanyController {
	return &CompanyController{Access: access, Logger: logger}
}

// ListCompanies godoc
// @Summary      List my companies
// @Description  Companies the caller holds an active membership in
// @Tags         companies
// @Produce      json
// @Success      200  {object}  models.ApiResponse
// @Failure      401  {object}  models.ApiResponse
// @Security     BearerAuth
// @Router       /api/companies [get]
func (ctrl *CompanyController) ListCompanies(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.Fail(c, models.ErrUnauthenticated)
	}

	companies, err := ctrl.Access.ListCompanies(c.UserContext(), identity.UserID)
	if err != nil {
		ctrl.Logger.Error("Failed to list companies", zap.Int64("userId", identity.UserID), zap.Error(err))
		return middleware.Fail(c, err)
	}
	return c.JSON(models.Success(companies))
}
