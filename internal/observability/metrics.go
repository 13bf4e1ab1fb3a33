package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec

	loginsTotal        *prometheus.CounterVec
	tokenFailuresTotal *prometheus.CounterVec
	authzDecisions     *prometheus.CounterVec
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hr_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_http_errors_total",
			Help: "Total HTTP error responses by error code",
		}, []string{"method", "route", "code"}),
		loginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_auth_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		tokenFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_auth_token_failures_total",
			Help: "Rejected bearer tokens by reason",
		}, []string{"reason"}),
		authzDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_authz_decisions_total",
			Help: "Authorization gate decisions",
		}, []string{"action", "result"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(method, route, code).Inc()
}

// RecordLogin counts a login attempt outcome.
func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.loginsTotal.WithLabelValues(result).Inc()
}

// RecordTokenFailure counts a rejected token.
func (m *Metrics) RecordTokenFailure(reason string) {
	if m == nil {
		return
	}
	m.tokenFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordDecision counts an authorization gate decision.
func (m *Metrics) RecordDecision(action string, allowed bool) {
	if m == nil {
		return
	}
	result := "denied"
	if allowed {
		result = "allowed"
	}
	m.authzDecisions.WithLabelValues(action, result).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
