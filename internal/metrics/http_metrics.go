package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados de dominio que se cuentan por separado de los códigos HTTP.
const (
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeConflict   = "conflict"
	OutcomeBadRequest = "bad_request"
	OutcomeInternal   = "internal"
)

// HTTPMetrics contiene las métricas de la API HTTP.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewHTTPMetrics crea y registra las métricas en registerer (nil -> DefaultRegisterer).
func NewHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "customer_orders_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "customer_orders_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "customer_orders_request_failures_total",
			Help: "Failed requests by domain outcome (validation, not_found, conflict, bad_request, internal)",
		}, []string{"outcome"}),
	}
	registerer.MustRegister(m.requests, m.duration, m.outcomes)
	return m
}

// ObserveRequest registra una petición terminada. route es el patrón (/api/customers/:id), no la ruta real.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveFailure cuenta una petición fallida por su tipo de error.
func (m *HTTPMetrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}
