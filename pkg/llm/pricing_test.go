package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostFor(t *testing.T) {
	tests := []struct {
		name             string
		model            string
		promptTokens     int64
		completionTokens int64
		want             float64
	}{
		{
			name:             "known model",
			model:            "gpt-4o-mini",
			promptTokens:     1_000_000,
			completionTokens: 1_000_000,
			want:             0.75,
		},
		{
			name:             "dated identifier resolves to family",
			model:            "gpt-4o-2024-08-06",
			promptTokens:     1_000_000,
			completionTokens: 0,
			want:             2.50,
		},
		{
			name:             "dated mini does not fall back to the larger family",
			model:            "gpt-4o-mini-2024-07-18",
			promptTokens:     1_000_000,
			completionTokens: 0,
			want:             0.15,
		},
		{
			name:             "bedrock identifier",
			model:            "anthropic.claude-3-5-sonnet-20241022-v2:0",
			promptTokens:     0,
			completionTokens: 1_000_000,
			want:             15.00,
		},
		{
			name:             "unknown model costs zero",
			model:            "local-llama",
			promptTokens:     500,
			completionTokens: 500,
			want:             0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CostFor(tt.model, tt.promptTokens, tt.completionTokens), 1e-8)
		})
	}
}

func TestPriceForUnknown(t *testing.T) {
	_, ok := PriceFor("definitely-not-a-model")
	assert.False(t, ok)
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewProviderError("openai", "Complete", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "Complete")

	wrapped := func() error { return err }()
	pe, ok := AsProviderError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "openai", pe.Provider)
}
