package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Decision outcomes of the authorization stage.
const (
	OutcomeBypassed = "bypassed"
	OutcomeMatched  = "matched"
	OutcomeDenied   = "denied"
	OutcomeErrored  = "errored"
)

// Metrics holds the authorization counters on a private registry so tests
// can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	decisions        *prometheus.CounterVec
	tenantRejections *prometheus.CounterVec
	resolveDuration  prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authz_decisions_total",
				Help: "Authorization decisions by outcome.",
			},
			[]string{"outcome"},
		),
		tenantRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authz_tenant_rejections_total",
				Help: "Requests rejected while resolving the tenant context.",
			},
			[]string{"reason"},
		),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authz_permission_resolve_duration_seconds",
			Help:    "Latency of permission set resolution.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.decisions, m.tenantRejections, m.resolveDuration)
	return m
}

// Nil receivers are accepted everywhere so stages can run without metrics.

func (m *Metrics) ObserveDecision(outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTenantRejection(reason string) {
	if m == nil {
		return
	}
	m.tenantRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveResolve(seconds float64) {
	if m == nil {
		return
	}
	m.resolveDuration.Observe(seconds)
}

// Registry exposes the underlying registry for scraping and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
