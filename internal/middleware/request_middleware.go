package middleware

import (
	"context"
	"time"

	"go-erp/internal/common/models"
	"go-erp/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID tags every request with an id, reusing X-Request-Id when the
// caller sends one, and copies it into the request context.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: models.RequestIDKey,
	})
}

// RequestIDFromCtx reads the id assigned by RequestID.
func RequestIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(models.RequestIDKey).(string)
	return id
}

// AccessLog logs every request once the rest of the chain has answered.
func AccessLog(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := RequestIDFromCtx(c)
		if requestID != "" {
			c.SetUserContext(context.WithValue(c.UserContext(), models.RequestIDKey, requestID))
		}

		// Process request
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String(logger.FieldPath, c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String(logger.FieldRequestID, requestID),
			zap.String("ip", c.IP()),
		}
		if companyID, ok := TenantIDFromCtx(c); ok {
			fields = append(fields, zap.Int64(logger.FieldTenantID, companyID))
		}
		if err != nil {
			log.Error("Request error", append(fields, zap.Error(err))...)
			return err
		}
		log.Info("Request processed", fields...)
		return nil
	}
}
