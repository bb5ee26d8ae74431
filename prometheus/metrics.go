package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"carcrm/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var namespace string

// Counter metrics
var (
	LoginCounter           prometheus.Counter
	HTTPRequestCounter     *prometheus.CounterVec
	AuthErrorCounter       *prometheus.CounterVec
	EntityOperationCounter *prometheus.CounterVec
	WaLinkCounter          prometheus.Counter
	ExportCounter          *prometheus.CounterVec
)

// Histogram metrics
var (
	RequestDuration     *prometheus.HistogramVec
	DBOperationDuration *prometheus.HistogramVec
)

// Gauge metrics
var (
	ActiveTokensGauge prometheus.Gauge
	InfoGauge         *prometheus.GaugeVec
)

// InitMetrics registers all metrics under the configured namespace prefix
func InitMetrics(cfg *config.Config) {
	namespace = cfg.Metrics.Prefix

	LoginCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_total",
		Help:      "Total number of login attempts",
	})

	HTTPRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	AuthErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_errors_total",
			Help:      "Total number of authentication errors",
		},
		[]string{"type"},
	)

	EntityOperationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operations_total",
			Help:      "Total number of entity operations",
		},
		[]string{"entity", "operation"},
	)

	WaLinkCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wa_links_total",
		Help:      "Total number of WhatsApp links generated",
	})

	ExportCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csv_exports_total",
			Help:      "Total number of CSV exports",
		},
		[]string{"type"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ActiveTokensGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_tokens",
		Help:      "Number of currently active session tokens",
	})

	InfoGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "info",
			Help:      "Information about the CRM service",
		},
		[]string{"version"},
	)
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
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

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordEntityOperation records a CRUD operation against an entity collection
func RecordEntityOperation(entity, operation string) {
	EntityOperationCounter.With(prometheus.Labels{
		"entity":    entity,
		"operation": operation,
	}).Inc()
}

// RecordExport records a CSV export by entity type
func RecordExport(exportType string) {
	ExportCounter.With(prometheus.Labels{"type": exportType}).Inc()
}
