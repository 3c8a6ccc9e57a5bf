package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

type mockLLM struct {
	completion *interfaces.Completion
	err        error
	calls      int
}

func (m *mockLLM) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	c := *m.completion
	return &c, nil
}

func (m *mockLLM) Name() string { return "mock" }

func (m *mockLLM) Model() string { return "gpt-4o-mini" }

func TestInstrumentedLLMSuccess(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	llm := &mockLLM{completion: &interfaces.Completion{
		Content:          "4",
		Model:            "gpt-4o-mini",
		PromptTokens:     100,
		CompletionTokens: 50,
		Cost:             0.1,
	}}
	instrumented := NewInstrumentedLLM(llm, metrics)

	completion, err := instrumented.Complete(context.Background(), []interfaces.Message{{Role: interfaces.MessageRoleUser, Content: "What is 2+2?"}})
	require.NoError(t, err)
	assert.Equal(t, "4", completion.Content)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("mock", "gpt-4o-mini", OutcomeSuccess)))
	assert.Equal(t, float64(100), testutil.ToFloat64(metrics.tokens.WithLabelValues("mock", "gpt-4o-mini", "prompt")))
	assert.Equal(t, float64(50), testutil.ToFloat64(metrics.tokens.WithLabelValues("mock", "gpt-4o-mini", "completion")))
	assert.InDelta(t, 0.1, testutil.ToFloat64(metrics.cost.WithLabelValues("mock", "gpt-4o-mini")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestInstrumentedLLMCacheHit(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	llm := &mockLLM{completion: &interfaces.Completion{
		Content:          "4",
		Model:            "gpt-4o-mini",
		PromptTokens:     100,
		CompletionTokens: 50,
		Cost:             0.1,
		CacheHit:         true,
	}}
	instrumented := NewInstrumentedLLM(llm, metrics)

	_, err := instrumented.Complete(context.Background(), []interfaces.Message{{Role: interfaces.MessageRoleUser, Content: "What is 2+2?"}})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("mock", "gpt-4o-mini", OutcomeCacheHit)))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.tokens.WithLabelValues("mock", "gpt-4o-mini", "prompt")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.cost.WithLabelValues("mock", "gpt-4o-mini")))
}

func TestInstrumentedLLMError(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	backendErr := errors.New("rate limited")
	llm := &mockLLM{err: backendErr}
	instrumented := NewInstrumentedLLM(llm, metrics)

	_, err := instrumented.Complete(context.Background(), []interfaces.Message{{Role: interfaces.MessageRoleUser, Content: "hello"}})
	require.ErrorIs(t, err, backendErr)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("mock", "gpt-4o-mini", OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestInstrumentedLLMModelOverride(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := New(registry)
	llm := &mockLLM{err: errors.New("boom")}
	instrumented := NewInstrumentedLLM(llm, metrics)

	_, err := instrumented.Complete(context.Background(), nil, interfaces.WithModel("gpt-4o"))
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("mock", "gpt-4o", OutcomeError)))
}

func TestInstrumentedLLMName(t *testing.T) {
	registry := prometheus.NewRegistry()
	instrumented := NewInstrumentedLLM(&mockLLM{}, New(registry))

	assert.Equal(t, "mock", instrumented.Name())
}
