package metrics

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level Prometheus instruments.
type Metrics struct {
	resolveOutcomes  *prometheus.CounterVec
	chargedAmount    prometheus.Counter
	ledgerEntries    prometheus.Counter
	rateLimitAllowed *prometheus.CounterVec
	rateLimitDenied  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		resolveOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geotoll_resolve_outcomes_total",
			Help: "Billing resolve calls by outcome.",
		}, []string{"outcome"}),
		chargedAmount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geotoll_charged_amount_total",
			Help: "Total amount debited across all users.",
		}),
		ledgerEntries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geotoll_ledger_entries_total",
			Help: "Ledger rows appended.",
		}),
		rateLimitAllowed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geotoll_rate_limit_allowed_total",
			Help: "Rate limit checks that passed.",
		}, []string{"scope"}),
		rateLimitDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geotoll_rate_limit_denied_total",
			Help: "Rate limit checks that were denied.",
		}, []string{"scope"}),
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geotoll_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geotoll_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) IncResolveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.resolveOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCharge(amount float64) {
	if m == nil {
		return
	}
	m.chargedAmount.Add(amount)
	m.ledgerEntries.Inc()
}

func (m *Metrics) IncRateLimitAllowed(scope string) {
	if m == nil {
		return
	}
	m.rateLimitAllowed.WithLabelValues(scope).Inc()
}

func (m *Metrics) IncRateLimitDenied(scope string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.WithLabelValues(scope).Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := statusLabel(c.Writer.Status())

		m.httpRequests.WithLabelValues(route, method, status).Inc()
		m.httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
