package middleware

import (
	"context"
	"strings"

	"go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IdentityVerifier turns a bearer credential into a validated identity.
type IdentityVerifier interface {
	Verify(token string) (*models.Identity, error)
}

// Authenticate attaches the caller identity when a valid bearer credential is
// present. Absent or invalid credentials leave the request anonymous; routes
// that need a caller add RequireAuth.
func Authenticate(verifier IdentityVerifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		// Extract token from "Bearer <token>"
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			logger.Debug("ignoring malformed authorization header", zap.String("path", c.Path()))
			return c.Next()
		}

		identity, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.Debug("invalid bearer token", zap.String("path", c.Path()), zap.Error(err))
			return c.Next()
		}

		SetIdentity(c, identity)
		return c.Next()
	}
}

// RequireAuth answers 401 for anonymous callers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromCtx(c); !ok {
			return Fail(c, models.ErrUnauthenticated)
		}
		return c.Next()
	}
}

func SetIdentity(c *fiber.Ctx, identity *models.Identity) {
	c.Locals(models.IdentityKey, identity)
	c.SetUserContext(context.WithValue(c.UserContext(), models.IdentityKey, identity))
}

func IdentityFromCtx(c *fiber.Ctx) (*models.Identity, bool) {
	identity, ok := c.Locals(models.IdentityKey).(*models.Identity)
	return identity, ok && identity != nil
}
