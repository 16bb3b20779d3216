// Package metrics provides Prometheus metrics for the AINO service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal tracks poller fetches by upstream and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aino",
			Subsystem: "ingest",
			Name:      "upstream_requests_total",
			Help:      "Total upstream fetches by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// UpstreamRequestDuration tracks upstream fetch latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aino",
			Subsystem: "ingest",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream fetches in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	// AdvisoriesObserved counts advisories seen by pollers.
	AdvisoriesObserved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aino",
			Subsystem: "monitor",
			Name:      "advisories_observed_total",
			Help:      "Advisories observed by kind and whether they were new",
		},
		[]string{"kind", "new"},
	)

	// AssessmentsTotal counts connection assessments by risk level.
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aino",
			Subsystem: "connections",
			Name:      "assessments_total",
			Help:      "Connection assessments by resulting risk level",
		},
		[]string{"risk_level"},
	)

	// AssessmentDuration tracks the assess pipeline latency.
	AssessmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aino",
			Subsystem: "connections",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a single connection assessment",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// AlertsPublished counts alert events published to Kafka.
	AlertsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aino",
			Subsystem: "alerts",
			Name:      "published_total",
			Help:      "Alert events published by type",
		},
		[]string{"type"},
	)

	// AssessmentsExpired counts rows removed by the worker sweep.
	AssessmentsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aino",
			Subsystem: "worker",
			Name:      "assessments_expired_total",
			Help:      "Stale assessments removed by the expiration sweep",
		},
	)
)
