// Package metrics provides Prometheus instrumentation for model
// backend calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for model backend calls
type Metrics struct {
	requests *prometheus.CounterVec
	tokens   *prometheus.CounterVec
	cost     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them on the given
// registerer. A nil registerer uses the default registry.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentchat_llm_requests_total",
				Help: "Total number of model backend requests.",
			},
			[]string{"provider", "model", "outcome"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentchat_llm_tokens_total",
				Help: "Total tokens consumed by model backend requests, excluding cache hits.",
			},
			[]string{"provider", "model", "kind"},
		),
		cost: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentchat_llm_cost_usd_total",
				Help: "Total USD cost of model backend requests, excluding cache hits.",
			},
			[]string{"provider", "model"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agentchat_llm_request_duration_seconds",
				Help:    "Model backend request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model"},
		),
	}

	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	registerer.MustRegister(m.requests, m.tokens, m.cost, m.duration)
	return m
}
