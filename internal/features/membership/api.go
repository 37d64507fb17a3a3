package membership

import (
	"go-erp/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CompanyApi struct {
	controller *CompanyController
}

func NewCompanyApi(controller *CompanyController) *CompanyApi {
	return &CompanyApi{controller: controller}
}

// Setup registers company routes. They sit on a tenant-exempt prefix.
func (h *CompanyApi) Setup(app *fiber.App) {
	companies := app.Group("/api/companies", middleware.RequireAuth())
	companies.Get("/", h.controller.ListCompanies)
}
