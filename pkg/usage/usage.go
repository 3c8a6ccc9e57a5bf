// Package usage tracks per-model token and cost consumption for agents
// and combines per-agent counters into cross-agent reports. Every
// counter keeps two views: actual usage covers only billable (non
// cached) completions, total usage also includes completions served
// from a cache.
package usage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// ModelUsage holds the accumulated figures for one model
type ModelUsage struct {
	Cost             float64 `json:"cost"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	TotalTokens      int64   `json:"total_tokens"`
}

// Summary is one view of accumulated usage: a per-model breakdown plus
// the grand total cost across models.
//
// Its JSON form is flat, with total_cost next to the model keys:
//
//	{"total_cost": 0.6, "gpt-4o-mini": {"cost": 0.3, ...}, ...}
//
// The field names are a stable contract consumed by external tooling.
type Summary struct {
	TotalCost float64
	Models    map[string]ModelUsage
}

// MarshalJSON renders the flat shape with total_cost alongside models
func (s Summary) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Models)+1)
	out["total_cost"] = s.TotalCost
	for model, mu := range s.Models {
		out[model] = mu
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the flat shape produced by MarshalJSON
func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TotalCost = 0
	s.Models = make(map[string]ModelUsage, len(raw))
	for key, value := range raw {
		if key == "total_cost" {
			if err := json.Unmarshal(value, &s.TotalCost); err != nil {
				return fmt.Errorf("parsing total_cost: %w", err)
			}
			continue
		}
		var mu ModelUsage
		if err := json.Unmarshal(value, &mu); err != nil {
			return fmt.Errorf("parsing usage for model %q: %w", key, err)
		}
		s.Models[key] = mu
	}
	return nil
}

// Equal reports whether two summaries carry identical figures
func (s Summary) Equal(other Summary) bool {
	if s.TotalCost != other.TotalCost || len(s.Models) != len(other.Models) {
		return false
	}
	for model, mu := range s.Models {
		if other.Models[model] != mu {
			return false
		}
	}
	return true
}

// Report combines the two views of a set of agents
type Report struct {
	Including Summary `json:"usage_including_cached_inference"`
	Excluding Summary `json:"usage_excluding_cached_inference"`
}

// Counter accumulates usage for a single agent, broken down by model.
// It is safe for concurrent use; an agent participating in several
// sessions at once shares one Counter across them.
type Counter struct {
	mu     sync.Mutex
	actual map[string]ModelUsage
	total  map[string]ModelUsage
}

// NewCounter creates an empty Counter
func NewCounter() *Counter {
	return &Counter{
		actual: make(map[string]ModelUsage),
		total:  make(map[string]ModelUsage),
	}
}

// Record adds one completion's figures to the counter. The total view
// is always updated; the actual view only when the completion was not
// served from cache. Entries accumulate per model and are never
// overwritten. Token totals are derived here rather than trusted from
// the caller, so total_tokens always equals prompt plus completion.
func (c *Counter) Record(model string, cost float64, promptTokens, completionTokens int64, cacheHit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	accumulate(c.total, model, cost, promptTokens, completionTokens)
	if !cacheHit {
		accumulate(c.actual, model, cost, promptTokens, completionTokens)
	}
}

func accumulate(entries map[string]ModelUsage, model string, cost float64, promptTokens, completionTokens int64) {
	mu := entries[model]
	mu.Cost += cost
	mu.PromptTokens += promptTokens
	mu.CompletionTokens += completionTokens
	mu.TotalTokens = mu.PromptTokens + mu.CompletionTokens
	entries[model] = mu
}

// ActualUsage returns a snapshot of the billable (non-cached) view
func (c *Counter) ActualUsage() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return summarize(c.actual)
}

// TotalUsage returns a snapshot of the view that includes cached
// completions
func (c *Counter) TotalUsage() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return summarize(c.total)
}

// Reset clears both views
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actual = make(map[string]ModelUsage)
	c.total = make(map[string]ModelUsage)
}

// summarize copies the entries so callers never observe later writes
func summarize(entries map[string]ModelUsage) Summary {
	s := Summary{Models: make(map[string]ModelUsage, len(entries))}
	for model, mu := range entries {
		s.Models[model] = mu
		s.TotalCost += mu.Cost
	}
	return s
}
