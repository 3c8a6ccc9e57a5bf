package usage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	counter *Counter
}

func (s stubProvider) UsageCounter() *Counter { return s.counter }

func TestGatherCombinesAcrossAgents(t *testing.T) {
	// mirrors the classic three-agent scenario: two agents on
	// gpt-4o-mini at 0.1 and 0.2, one on gpt-4o at 0.3
	a1 := NewCounter()
	a1.Record("gpt-4o-mini", 0.1, 100, 20, false)
	a2 := NewCounter()
	a2.Record("gpt-4o-mini", 0.2, 200, 40, false)
	a3 := NewCounter()
	a3.Record("gpt-4o", 0.3, 150, 30, false)

	report := Gather(stubProvider{a1}, stubProvider{a2}, stubProvider{a3})

	including := report.Including
	assert.InDelta(t, 0.6, including.TotalCost, 1e-8)
	assert.InDelta(t, 0.3, including.Models["gpt-4o-mini"].Cost, 1e-8)
	assert.InDelta(t, 0.3, including.Models["gpt-4o"].Cost, 1e-8)
	assert.Equal(t, int64(300), including.Models["gpt-4o-mini"].PromptTokens)
	assert.Equal(t, int64(360), including.Models["gpt-4o-mini"].TotalTokens)

	// nothing was cached, so the two views agree
	assert.True(t, report.Including.Equal(report.Excluding))
}

func TestGatherSkipsAgentsWithoutCounter(t *testing.T) {
	report := Gather(stubProvider{nil})

	assert.Zero(t, report.Including.TotalCost)
	assert.Empty(t, report.Including.Models)
	assert.Zero(t, report.Excluding.TotalCost)
	assert.Empty(t, report.Excluding.Models)
}

func TestGatherMixedCounterAndClientless(t *testing.T) {
	c := NewCounter()
	c.Record("gpt-4o", 0.3, 10, 5, false)

	report := Gather(stubProvider{nil}, stubProvider{c}, stubProvider{nil})
	assert.InDelta(t, 0.3, report.Excluding.TotalCost, 1e-8)
	require.Len(t, report.Excluding.Models, 1)
}

func TestGatherOrderIndependent(t *testing.T) {
	build := func() []Provider {
		a := NewCounter()
		a.Record("gpt-4o-mini", 0.1, 100, 20, false)
		b := NewCounter()
		b.Record("gpt-4o-mini", 0.2, 200, 40, true)
		c := NewCounter()
		c.Record("gpt-4o", 0.3, 150, 30, false)
		return []Provider{stubProvider{a}, stubProvider{b}, stubProvider{c}}
	}

	providers := build()
	baseline := Gather(providers...)

	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, perm := range permutations {
		ordered := make([]Provider, len(perm))
		for i, idx := range perm {
			ordered[i] = providers[idx]
		}
		report := Gather(ordered...)
		assert.True(t, baseline.Including.Equal(report.Including), "permutation %v diverged (including)", perm)
		assert.True(t, baseline.Excluding.Equal(report.Excluding), "permutation %v diverged (excluding)", perm)
	}
}

func TestGatherTotalCostMatchesPerModelSum(t *testing.T) {
	a := NewCounter()
	a.Record("gpt-4o-mini", 0.125, 100, 20, false)
	a.Record("gpt-4o", 0.375, 150, 30, false)
	b := NewCounter()
	b.Record("claude-3-5-sonnet", 0.5, 80, 40, false)

	report := Gather(stubProvider{a}, stubProvider{b})

	for name, view := range map[string]Summary{
		"including": report.Including,
		"excluding": report.Excluding,
	} {
		var sum float64
		for _, mu := range view.Models {
			sum += mu.Cost
		}
		assert.InDelta(t, sum, view.TotalCost, 1e-8, "view %s", name)
	}
}

func TestPrintAllNonCached(t *testing.T) {
	c := NewCounter()
	c.Record("gpt-4o-mini", 0.3, 150, 30, false)

	var buf bytes.Buffer
	PrintSummary(&buf, stubProvider{c})

	out := buf.String()
	assert.Contains(t, out, "Usage summary excluding cached usage:")
	assert.Contains(t, out, "Total cost: 0.3")
	assert.Contains(t, out, "* Model 'gpt-4o-mini': cost: 0.3, prompt_tokens: 150, completion_tokens: 30, total_tokens: 180")
	assert.Contains(t, out, "All completions are non-cached: the total cost with cached completions is the same as actual cost.")
	assert.NotContains(t, out, "Usage summary including cached usage:")
}

func TestPrintDivergentViews(t *testing.T) {
	c := NewCounter()
	c.Record("gpt-4o-mini", 0.3, 150, 30, false)
	c.Record("gpt-4o-mini", 0.3, 150, 30, true)

	var buf bytes.Buffer
	Gather(stubProvider{c}).Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Usage summary excluding cached usage:")
	assert.Contains(t, out, "Usage summary including cached usage:")
	assert.NotContains(t, out, "All completions are non-cached")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 100)))
}
