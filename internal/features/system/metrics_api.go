package system

import (
	"go-erp/internal/common/api"
	"go-erp/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type MetricsApi struct {
	metrics *metrics.Metrics
}

func NewMetricsApi(m *metrics.Metrics) api.Route {
	return &MetricsApi{metrics: m}
}

// Setup exposes the Prometheus scrape endpoint
func (h *MetricsApi) Setup(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(h.metrics.Handler()))
}
