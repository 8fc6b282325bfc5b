package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "precinct_records_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "precinct_records_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Authentication metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "precinct_records_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// Record metrics
	RecordsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "precinct_records_created_total",
			Help: "Total number of records created",
		},
		[]string{"type"},
	)

	// Audit metrics
	AuditEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "precinct_records_audit_entries_total",
			Help: "Total number of audit entries written",
		},
	)

	AuditFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "precinct_records_audit_failures_total",
			Help: "Total number of audit entries that failed to persist",
		},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "precinct_records_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"key"},
	)

	// Upload metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "precinct_records_uploads_total",
			Help: "Total number of file uploads",
		},
		[]string{"kind", "status"},
	)
)
