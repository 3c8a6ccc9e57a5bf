package usage

// Provider exposes an agent's usage counter to the aggregator. Agents
// without a model backend return nil and are skipped.
type Provider interface {
	UsageCounter() *Counter
}

// Gather merges the counters of the given providers into one report.
// Providers whose counter is nil contribute nothing; they are silently
// skipped rather than treated as an error. The result does not depend
// on provider order.
func Gather(providers ...Provider) Report {
	report := Report{
		Including: Summary{Models: make(map[string]ModelUsage)},
		Excluding: Summary{Models: make(map[string]ModelUsage)},
	}
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		counter := provider.UsageCounter()
		if counter == nil {
			continue
		}
		mergeInto(&report.Including, counter.TotalUsage())
		mergeInto(&report.Excluding, counter.ActualUsage())
	}
	return report
}

func mergeInto(dst *Summary, src Summary) {
	for model, mu := range src.Models {
		accumulate(dst.Models, model, mu.Cost, mu.PromptTokens, mu.CompletionTokens)
		dst.TotalCost += mu.Cost
	}
}
