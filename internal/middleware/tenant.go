package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-erp/internal/common/models"
	"go-erp/internal/config"
	"go-erp/internal/logger"
	"go-erp/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccessChecker reports whether a user holds an active membership in a company.
type AccessChecker interface {
	HasAccess(ctx context.Context, userID, companyID int64) (bool, error)
}

// TenantResolver validates the company header and the caller's membership,
// then publishes the company id for later stages.
type TenantResolver struct {
	access   AccessChecker
	header   string
	exempt   []string
	failOpen bool
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewTenantResolver accepts a nil access checker. Without one every tenant
// request is denied unless cfg.TenantAccessFailOpen is set.
func NewTenantResolver(cfg *config.Config, access AccessChecker, log *zap.Logger, m *metrics.Metrics) *TenantResolver {
	exempt := make([]string, 0, len(cfg.TenantExemptPrefixes))
	for _, prefix := range cfg.TenantExemptPrefixes {
		prefix = strings.TrimRight(strings.ToLower(strings.TrimSpace(prefix)), "/")
		if prefix == "" {
			continue
		}
		exempt = append(exempt, prefix)
	}

	header := cfg.CompanyHeader
	if header == "" {
		header = "X-Company-Id"
	}

	if access == nil {
		if cfg.TenantAccessFailOpen {
			log.Warn("tenant access checker not configured; membership checks are skipped")
		} else {
			log.Warn("tenant access checker not configured; tenant requests will be denied")
		}
	}

	return &TenantResolver{
		access:   access,
		header:   header,
		exempt:   exempt,
		failOpen: cfg.TenantAccessFailOpen,
		logger:   log,
		metrics:  m,
	}
}

// isExempt matches whole path segments: "/api/auth" covers "/api/auth" and
// "/api/auth/login" but not "/api/authorization".
func (t *TenantResolver) isExempt(path string) bool {
	lower := strings.ToLower(path)
	for _, prefix := range t.exempt {
		rest, found := strings.CutPrefix(lower, prefix)
		if found && (rest == "" || rest[0] == '/') {
			return true
		}
	}
	return false
}

// Handler must run after Authenticate and before any PermissionGuard.
func (t *TenantResolver) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if t.isExempt(c.Path()) {
			return c.Next()
		}
		identity, ok := IdentityFromCtx(c)
		if !ok {
			return c.Next()
		}

		companyID, err := ParseTenantID(c.Get(t.header))
		if err != nil {
			t.metrics.ObserveTenantRejection(rejectionReason(err))
			return Fail(c, err)
		}

		log := t.logger.With(
			zap.Int64(logger.FieldTenantID, companyID),
			zap.Int64(logger.FieldUserID, identity.UserID),
			zap.String(logger.FieldPath, c.Path()),
		)

		if identity.UserID <= 0 {
			log.Warn("identity has no usable user id")
			t.metrics.ObserveTenantRejection("forbidden")
			return Fail(c, models.ErrTenantAccessDenied)
		}

		switch {
		case t.access != nil:
			allowed, err := t.access.HasAccess(c.UserContext(), identity.UserID, companyID)
			if err != nil {
				log.Error("tenant access check failed", zap.Error(err))
				t.metrics.ObserveTenantRejection("error")
				return Fail(c, models.ErrResolutionFault)
			}
			if !allowed {
				log.Warn("tenant access denied")
				t.metrics.ObserveTenantRejection("forbidden")
				return Fail(c, models.ErrTenantAccessDenied)
			}
		case !t.failOpen:
			log.Warn("tenant access denied: no access checker configured")
			t.metrics.ObserveTenantRejection("forbidden")
			return Fail(c, models.ErrTenantAccessDenied)
		}

		c.Locals(models.TenantIDKey, companyID)
		c.SetUserContext(context.WithValue(c.UserContext(), models.TenantIDKey, companyID))
		return c.Next()
	}
}

// ParseTenantID validates the raw header value.
func ParseTenantID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, models.ErrMissingTenantID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.ErrInvalidTenantID
	}
	if id <= 0 {
		return 0, models.ErrNonPositiveTenantID
	}
	return id, nil
}

// TenantIDFromCtx reads the company id published by the tenant stage.
func TenantIDFromCtx(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(models.TenantIDKey).(int64)
	return id, ok && id > 0
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, models.ErrMissingTenantID):
		return "missing"
	case errors.Is(err, models.ErrNonPositiveTenantID):
		return "non_positive"
	default:
		return "invalid"
	}
}
