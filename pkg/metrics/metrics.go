package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every collector exposed on /api/metrics.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Buckets tuned for API latencies from a few milliseconds up to slow webhook calls.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Metrics
	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Object storage metrics (avatars)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Outbound email
	EmailsSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_emails_sent_total",
			Help: "Emails handed to the mail webhook",
		},
		[]string{"event", "status"},
	)

	EmailDeliveryDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roleready_email_delivery_duration_seconds",
			Help:    "Mail webhook delivery duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"status"},
	)

	CircuitBreakerState = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roleready_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"breaker"},
	)

	// Business Metrics
	UserRegistrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_user_registrations_total",
			Help: "User registration attempts",
		},
		[]string{"status"},
	)

	Logins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_logins_total",
			Help: "Login attempts",
		},
		[]string{"status"},
	)

	SkillValidationRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_skill_validation_requests_total",
			Help: "Skill validation requests routed to mentors",
		},
		[]string{"routing"},
	)

	SkillValidationsResolved = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_skill_validations_resolved_total",
			Help: "Skill validations resolved by mentors",
		},
		[]string{"outcome"},
	)

	MentorAssignments = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_mentor_assignments_total",
			Help: "Mentor to student assignments",
		},
		[]string{"mode"},
	)

	MentorApplicationTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_mentor_application_transitions_total",
			Help: "Mentor application status transitions",
		},
		[]string{"status"},
	)

	BulkActionItems = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_bulk_action_items_total",
			Help: "Items processed by admin bulk actions",
		},
		[]string{"resource", "action", "status"},
	)

	ReadinessComputations = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roleready_readiness_score",
			Help:    "Distribution of computed readiness scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	TicketEvents = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roleready_ticket_events_total",
			Help: "Support ticket events",
		},
		[]string{"event"},
	)

	BulkEmailRecipients = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roleready_bulk_email_recipients",
			Help:    "Recipients per accepted bulk email",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
		},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

// RecordInfrastructureMetrics samples runtime stats every 15s until ctx is done.
func RecordInfrastructureMetrics(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration returns seconds elapsed since start
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// ObserveDB records the outcome of a repository call.
func ObserveDB(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DBOperationDuration.WithLabelValues(operation, status).Observe(MeasureDuration(start))
	DBOperationTotal.WithLabelValues(operation, status).Inc()
}
