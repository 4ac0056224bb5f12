package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Authentication/authorization error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_auth_errors_total",
			Help: "Total number of authentication and authorization errors",
		},
		[]string{"type"}, // "missing_token", "invalid_token", "insufficient_role", etc.
	)

	// Tenant scope resolution counter
	ScopeResolutionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_tenant_scope_resolutions_total",
			Help: "Total number of tenant scope resolutions by outcome",
		},
		[]string{"outcome"}, // "scoped" or "unscoped"
	)

	// Tenant directory operation counter
	TenantOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_tenant_operations_total",
			Help: "Total number of tenant directory operations",
		},
		[]string{"operation"}, // "create", "list", "get", "update", "delete"
	)

	// Booking operation counter
	BookingOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_booking_operations_total",
			Help: "Total number of booking operations",
		},
		[]string{"operation"}, // "create", "list", "cancel", "status", "delete"
	)

	// Booking slot conflict counter
	BookingConflictCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_booking_conflicts_total",
			Help: "Total number of rejected double-booked slots",
		},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gym_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gym_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// InitMetrics registers all metrics with the default registry
func InitMetrics() {
	prometheus.MustRegister(
		HTTPRequestCounter,
		AuthErrorCounter,
		ScopeResolutionCounter,
		TenantOperationCounter,
		BookingOperationCounter,
		BookingConflictCounter,
		RequestDuration,
		DBOperationDuration,
	)
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// TrackDBOperation returns a function that records the duration of a database
// operation when called. Use with defer:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		DBOperationDuration.With(prometheus.Labels{"operation": operation}).Observe(time.Since(startTime).Seconds())
	}
}

// RecordAuthError records an authentication or authorization error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordScopeResolution records a tenant scope resolution outcome
func RecordScopeResolution(outcome string) {
	ScopeResolutionCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordTenantOperation records a tenant directory operation
func RecordTenantOperation(operation string) {
	TenantOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordBookingOperation records a booking operation
func RecordBookingOperation(operation string) {
	BookingOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordBookingConflict records a rejected double-booked slot
func RecordBookingConflict() {
	BookingConflictCounter.Inc()
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
