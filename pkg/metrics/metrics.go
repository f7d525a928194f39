package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EvaluationRuns counts engine evaluation passes by result (success|partial|error).
	EvaluationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcare_evaluation_runs_total",
			Help: "Total number of expiry evaluation passes",
		},
		[]string{"result"},
	)

	// OwnersEvaluated counts owners whose vehicles completed a full evaluation.
	OwnersEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcare_owners_evaluated_total",
			Help: "Total number of owner batches fully evaluated",
		},
	)

	// NotificationsCreated counts persisted expiry notifications by document type and state class.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcare_notifications_created_total",
			Help: "Total number of expiry notifications created",
		},
		[]string{"document_type", "state_class"},
	)

	// TupleFailures counts per-tuple evaluation failures left for the next tick.
	TupleFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcare_tuple_failures_total",
			Help: "Total number of vehicle/document tuples that failed evaluation",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fleetcare_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
