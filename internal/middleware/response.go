package middleware

import (
	"go-erp/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// Fail answers with the envelope mapped from err. The body never carries err's text.
func Fail(c *fiber.Ctx, err error) error {
	status, message := models.StatusFor(err)
	return c.Status(status).JSON(models.Failure(status, message))
}

// ErrorHandler is the fiber.Config error handler. Routing errors keep their
// status; everything else becomes an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(models.Failure(fe.Code, fe.Message))
	}
	return Fail(c, err)
}
