package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-erp/internal/common/models"
	"go-erp/internal/logger"
	"go-erp/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PermissionResolver computes the permission set of a user in a company.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID, companyID int64) (*models.ResolvedPermissions, error)
}

// PermissionGuard builds per-endpoint authorization stages.
type PermissionGuard struct {
	resolver PermissionResolver
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewPermissionGuard(resolver PermissionResolver, log *zap.Logger, m *metrics.Metrics) *PermissionGuard {
	return &PermissionGuard{
		resolver: timedResolver{next: resolver, metrics: m},
		logger:   log,
		metrics:  m,
	}
}

// Require allows the request when any of perms ("module.action") is granted.
// Strings are decoded here, once; malformed ones are logged and never match.
func (g *PermissionGuard) Require(perms ...string) fiber.Handler {
	reqs, errs := models.ParseRequirements(perms...)
	for _, err := range errs {
		g.logger.Warn("malformed permission requirement", zap.Error(err))
	}
	return g.guard(func(*fiber.Ctx) []models.Requirement { return reqs })
}

func (g *PermissionGuard) guard(requirements func(c *fiber.Ctx) []models.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		if !ok {
			// authentication is enforced by RequireAuth
			return c.Next()
		}

		companyID, _ := TenantIDFromCtx(c)
		log := g.logger.With(
			zap.Int64(logger.FieldUserID, identity.UserID),
			zap.Int64(logger.FieldTenantID, companyID),
			zap.String(logger.FieldPath, c.Path()),
			zap.String(logger.FieldRequestID, RequestIDFromCtx(c)),
		)

		if identity.UserID <= 0 {
			log.Warn("permission denied: identity has no user id")
			g.metrics.ObserveDecision(metrics.OutcomeDenied)
			return Fail(c, models.ErrPermissionDenied)
		}

		reqs := requirements(c)
		outcome, err := g.decide(c, reqs)
		g.metrics.ObserveDecision(outcome)

		switch outcome {
		case metrics.OutcomeBypassed, metrics.OutcomeMatched:
			return c.Next()
		case metrics.OutcomeDenied:
			log.Warn("permission denied", zap.String("required", joinRequirements(reqs)))
			return Fail(c, models.ErrPermissionDenied)
		default:
			log.Error("permission resolution failed", zap.Error(err))
			return Fail(c, models.ErrResolutionFault)
		}
	}
}

// decide never lets a fault turn into an allow.
func (g *PermissionGuard) decide(c *fiber.Ctx, reqs []models.Requirement) (outcome string, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = metrics.OutcomeErrored
			err = fmt.Errorf("%w: panic: %v", models.ErrResolutionFault, r)
		}
	}()

	set, err := ResolvedPermissions(c, g.resolver)
	if err != nil {
		return metrics.OutcomeErrored, err
	}
	if set.Bypass() {
		return metrics.OutcomeBypassed, nil
	}
	if set.SatisfiesAny(reqs) {
		return metrics.OutcomeMatched, nil
	}
	return metrics.OutcomeDenied, nil
}

type cachedPermissions struct {
	userID    int64
	companyID int64
	set       *models.ResolvedPermissions
}

// ResolvedPermissions returns the caller's set for the current company. The
// resolver runs at most once per request per (user, company); the result
// lives in the request locals and dies with the request.
func ResolvedPermissions(c *fiber.Ctx, resolver PermissionResolver) (*models.ResolvedPermissions, error) {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	companyID, _ := TenantIDFromCtx(c)

	if cached, ok := c.Locals(models.ResolvedPermissionsKey).(*cachedPermissions); ok &&
		cached.userID == identity.UserID && cached.companyID == companyID {
		return cached.set, nil
	}

	set, err := resolver.Resolve(c.UserContext(), identity.UserID, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolve permissions for user %d in company %d: %w", identity.UserID, companyID, err)
	}
	if set == nil {
		set = models.DenyAll()
	}

	c.Locals(models.ResolvedPermissionsKey, &cachedPermissions{
		userID:    identity.UserID,
		companyID: companyID,
		set:       set,
	})
	return set, nil
}

type timedResolver struct {
	next    PermissionResolver
	metrics *metrics.Metrics
}

func (r timedResolver) Resolve(ctx context.Context, userID, companyID int64) (*models.ResolvedPermissions, error) {
	start := time.Now()
	defer func() { r.metrics.ObserveResolve(time.Since(start).Seconds()) }()
	return r.next.Resolve(ctx, userID, companyID)
}

func joinRequirements(reqs []models.Requirement) string {
	parts := make([]string, 0, len(reqs))
	for _, req := range reqs {
		parts = append(parts, req.String())
	}
	return strings.Join(parts, ",")
}
