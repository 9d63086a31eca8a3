package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

// Pipeline metrics, registered on the default registry and exposed by the
// serve command's /metrics endpoint.
var (
	StageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrms",
		Subsystem: "pipeline",
		Name:      "stage_total",
		Help:      "Pipeline stage completions by outcome.",
	}, []string{"stage", "outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hrms",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Pipeline stage latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	FallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrms",
		Subsystem: "pipeline",
		Name:      "layout_fallback_total",
		Help:      "Deterministic fallback layouts served, by reason.",
	}, []string{"reason"})

	NotificationsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hrms",
		Subsystem: "notify",
		Name:      "messages_total",
		Help:      "Notification stream messages received.",
	})
)
