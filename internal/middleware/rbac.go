package middleware

import (
	"strings"

	"go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// RouteCatalog maps a concrete method and path onto the permission keys of a
// module that authorize it.
type RouteCatalog interface {
	PermissionKeysForRoute(moduleKey, method, path string) []string
}

// RequireRoute derives the requirements from the catalog for the matched
// request. A route no permission key covers is denied to non-admins.
func (g *PermissionGuard) RequireRoute(catalog RouteCatalog, moduleKey string) fiber.Handler {
	return g.guard(func(c *fiber.Ctx) []models.Requirement {
		keys := catalog.PermissionKeysForRoute(moduleKey, c.Method(), routePath(c.Path()))
		reqs := make([]models.Requirement, 0, len(keys))
		for _, key := range keys {
			req, err := models.ParseRequirement(moduleKey + "." + key)
			if err != nil {
				continue
			}
			reqs = append(reqs, req)
		}
		return reqs
	})
}

// routePath drops a trailing slash so "/api/role/" resolves like "/api/role",
// matching fiber's non-strict routing.
func routePath(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}
	return path
}
