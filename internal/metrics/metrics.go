// Package metrics holds the Prometheus instrumentation shared by the
// scheduler, router, ledger and action log.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Scheduler: evaluation passes and per-agent firings.
	SchedulerPasses  prometheus.Counter
	SchedulerFirings *prometheus.CounterVec // mode: gated | pre_approved

	// Ledger: approvals created and decided.
	ApprovalsCreated prometheus.Counter
	ApprovalsDecided *prometheus.CounterVec // decision: approved | rejected

	// Router: generation requests by provider and outcome.
	LLMRequests *prometheus.CounterVec // provider, outcome: ok | error

	// Executor: dispatch latency by kind.
	ExecutorDuration *prometheus.HistogramVec // kind

	// Action log backpressure.
	LogBufferFill prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	// Null registry fallback keeps callers nil-safe in tests.
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		SchedulerPasses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "agentd_scheduler_passes_total",
			Help: "Total number of scheduler evaluation passes.",
		}),
		SchedulerFirings: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agentd_scheduler_firings_total",
			Help: "Total number of agent firings by dispatch mode.",
		}, []string{"mode"}),

		ApprovalsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "agentd_approvals_created_total",
			Help: "Total number of drafted approvals.",
		}),
		ApprovalsDecided: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agentd_approvals_decided_total",
			Help: "Total number of decided approvals by decision.",
		}, []string{"decision"}),

		LLMRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agentd_llm_requests_total",
			Help: "Total number of routed generation requests.",
		}, []string{"provider", "outcome"}),

		ExecutorDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agentd_executor_duration_seconds",
			Help:    "Histogram of external executor dispatch latency.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind"}),

		LogBufferFill: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "agentd_actionlog_buffer_utilization",
			Help: "Current number of entries in the action log buffer.",
		}),
	}
}
