// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "task_error"
	OutcomePanic    = "task_panic"
)

var (
	AdvisorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_calls_total",
			Help: "Total number of advisor endpoint calls by outcome",
		},
		[]string{"advisor", "outcome"},
	)

	AdvisorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_call_duration_seconds",
			Help:    "Duration of advisor endpoint calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
		},
		[]string{"advisor"},
	)

	AdvisorCallsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "advisor_calls_in_flight",
			Help: "Number of advisor calls currently waiting on their endpoint",
		},
		[]string{"advisor"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prd_generations_total",
			Help: "Total number of document generations by status",
		},
		[]string{"status"},
	)

	GenerationAdvisors = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prd_generation_advisors",
			Help:    "Number of advisors consulted per generation",
			Buckets: []float64{1, 2, 3, 4, 6, 8},
		},
	)
)
