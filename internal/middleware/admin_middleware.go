package middleware

import (
	"go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin lets through only tenant admins and system roles.
func (g *PermissionGuard) RequireAdmin() fiber.Handler {
	return g.guard(func(*fiber.Ctx) []models.Requirement { return nil })
}
