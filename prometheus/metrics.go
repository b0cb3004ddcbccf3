package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pushkaraj-Palli/NotesFlow/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec

	// Domain operation metrics
	NoteOperationsCounter   *prometheus.CounterVec
	TenantOperationsCounter *prometheus.CounterVec
	UserOperationsCounter   *prometheus.CounterVec

	// Quota metrics
	QuotaDeniedCounter *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Tenant specific metrics
	NotesPerTenantGauge *prometheus.GaugeVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "missing_token", "invalid_token", "invalid_credentials", etc.
	)

	NoteOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_note_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation"}, // "list", "create", "get", "update", "delete", "pin"
	)

	TenantOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_operations_total",
			Help: "Total number of tenant operations",
		},
		[]string{"operation"}, // "view", "usage", "change_plan"
	)

	UserOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_user_operations_total",
			Help: "Total number of user operations",
		},
		[]string{"operation"}, // "register", "login", "invite", "list"
	)

	QuotaDeniedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_quota_denied_total",
			Help: "Total number of operations denied by plan quota",
		},
		[]string{"resource"}, // "note", "user"
	)

	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)

	NotesPerTenantGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_notes_per_tenant",
			Help: "Current number of notes per tenant",
		},
		[]string{"tenant_id"},
	)
}

// RecordAuthAttempt increments the authentication attempt counter
func RecordAuthAttempt() {
	if AuthAttemptsCounter != nil {
		AuthAttemptsCounter.Inc()
	}
}

// RecordAuthSuccess increments the successful authentication counter
func RecordAuthSuccess() {
	if AuthSuccessCounter != nil {
		AuthSuccessCounter.Inc()
	}
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	if AuthErrorsCounter != nil {
		AuthErrorsCounter.WithLabelValues(errorType).Inc()
	}
}

// RecordNoteOperation increments the note operation counter
func RecordNoteOperation(operation string) {
	if NoteOperationsCounter != nil {
		NoteOperationsCounter.WithLabelValues(operation).Inc()
	}
}

// RecordTenantOperation increments the tenant operation counter
func RecordTenantOperation(operation string) {
	if TenantOperationsCounter != nil {
		TenantOperationsCounter.WithLabelValues(operation).Inc()
	}
}

// RecordUserOperation increments the user operation counter
func RecordUserOperation(operation string) {
	if UserOperationsCounter != nil {
		UserOperationsCounter.WithLabelValues(operation).Inc()
	}
}

// RecordQuotaDenied increments the quota denial counter for a resource kind
func RecordQuotaDenied(resource string) {
	if QuotaDeniedCounter != nil {
		QuotaDeniedCounter.WithLabelValues(resource).Inc()
	}
}

// TrackDBOperation returns a function that records the duration of a
// database operation when called. Usage:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		if DbOperationDuration != nil {
			DbOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		}
	}
}

// UpdateNotesPerTenant sets the notes-per-tenant gauge
func UpdateNotesPerTenant(tenantID uint, count int) {
	if NotesPerTenantGauge != nil {
		NotesPerTenantGauge.WithLabelValues(strconv.FormatUint(uint64(tenantID), 10)).Set(float64(count))
	}
}

// Middleware returns an Echo middleware that records HTTP request metrics
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			if HttpRequestsTotal != nil {
				HttpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
			}
			if HttpRequestDuration != nil {
				HttpRequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
			}

			return err
		}
	}
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
