package prometheus

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing,
// so packages can be exercised without a registry.
type Metrics struct {
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Catalog mutation metrics
	CatalogOperationsCounter *prometheus.CounterVec

	// Change event metrics
	EventsPublishedCounter *prometheus.CounterVec
}

// InitMetrics registers the collectors on reg using prefix for every metric name
func InitMetrics(reg prometheus.Registerer, prefix string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		AuthErrorsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of rejected bearer tokens",
			},
			[]string{"reason"},
		),

		DbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),

		CatalogOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_catalog_operations_total",
				Help: "Total number of catalog mutations by entity and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),

		EventsPublishedCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_events_published_total",
				Help: "Total number of catalog change events handed to the broker",
			},
			[]string{"entity", "outcome"},
		),
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		m.DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordCatalogOperation increments the counter for a catalog mutation
func (m *Metrics) RecordCatalogOperation(entity, operation, outcome string) {
	if m == nil {
		return
	}
	m.CatalogOperationsCounter.WithLabelValues(entity, operation, outcome).Inc()
}

// RecordAuthError increments the counter for rejected tokens
func (m *Metrics) RecordAuthError(reason string) {
	if m == nil {
		return
	}
	m.AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordEventPublished increments the counter for change events
func (m *Metrics) RecordEventPublished(entity string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EventsPublishedCounter.WithLabelValues(entity, outcome).Inc()
}

// Middleware records request count and duration for every route
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the response so the recorded status is the real one
				c.Error(err)
			}

			duration := time.Since(start).Seconds()

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
			m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

			return nil
		}
	}
}
