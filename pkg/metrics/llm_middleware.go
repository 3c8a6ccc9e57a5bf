package metrics

import (
	"context"
	"time"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// Outcome label values for the request counter
const (
	OutcomeSuccess  = "success"
	OutcomeCacheHit = "cache_hit"
	OutcomeError    = "error"
)

// InstrumentedLLM wraps a model backend and records request, token,
// cost, and latency metrics for every completion call
type InstrumentedLLM struct {
	llm     interfaces.ChatLLM
	metrics *Metrics
}

// NewInstrumentedLLM wraps a model backend with the given metrics
func NewInstrumentedLLM(llm interfaces.ChatLLM, metrics *Metrics) *InstrumentedLLM {
	return &InstrumentedLLM{llm: llm, metrics: metrics}
}

// Complete delegates to the wrapped backend and records the outcome.
// Token and cost counters cover billable calls only; cache hits count
// as requests but add no tokens or cost.
func (i *InstrumentedLLM) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	provider := i.llm.Name()
	model := i.effectiveModel(options...)

	start := time.Now()
	completion, err := i.llm.Complete(ctx, messages, options...)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		i.metrics.requests.WithLabelValues(provider, model, OutcomeError).Inc()
		i.metrics.duration.WithLabelValues(provider, model).Observe(elapsed)
		return nil, err
	}

	if completion.Model != "" {
		model = completion.Model
	}
	i.metrics.duration.WithLabelValues(provider, model).Observe(elapsed)

	if completion.CacheHit {
		i.metrics.requests.WithLabelValues(provider, model, OutcomeCacheHit).Inc()
		return completion, nil
	}

	i.metrics.requests.WithLabelValues(provider, model, OutcomeSuccess).Inc()
	i.metrics.tokens.WithLabelValues(provider, model, "prompt").Add(float64(completion.PromptTokens))
	i.metrics.tokens.WithLabelValues(provider, model, "completion").Add(float64(completion.CompletionTokens))
	i.metrics.cost.WithLabelValues(provider, model).Add(completion.Cost)
	return completion, nil
}

// effectiveModel resolves the model label before a response exists,
// from a per-request override or the wrapped client's configuration
func (i *InstrumentedLLM) effectiveModel(options ...interfaces.CompleteOption) string {
	opts := interfaces.ApplyCompleteOptions(options...)
	if opts.Model != "" {
		return opts.Model
	}
	if m, ok := i.llm.(interface{ Model() string }); ok {
		return m.Model()
	}
	return "unknown"
}

// Name returns the name of the wrapped backend
func (i *InstrumentedLLM) Name() string {
	return i.llm.Name()
}

var _ interfaces.ChatLLM = (*InstrumentedLLM)(nil)
