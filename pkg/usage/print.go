package usage

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Print writes the human-readable rendering of the report. When the
// two views are numerically identical only the actual view is shown,
// followed by a note that no completions were cached. Costs are
// rounded to five decimals for display only; the underlying report is
// untouched.
func (r Report) Print(w io.Writer) {
	divider := strings.Repeat("-", 100)
	fmt.Fprintln(w, divider)
	printView(w, r.Excluding, "excluding")
	if r.Excluding.Equal(r.Including) {
		fmt.Fprintln(w, "All completions are non-cached: the total cost with cached completions is the same as actual cost.")
	} else {
		printView(w, r.Including, "including")
	}
	fmt.Fprintln(w, divider)
}

// PrintSummary gathers the providers and prints the combined report
func PrintSummary(w io.Writer, providers ...Provider) {
	Gather(providers...).Print(w)
}

func printView(w io.Writer, s Summary, word string) {
	fmt.Fprintf(w, "Usage summary %s cached usage:\n", word)
	fmt.Fprintf(w, "Total cost: %v\n", round5(s.TotalCost))

	models := make([]string, 0, len(s.Models))
	for model := range s.Models {
		models = append(models, model)
	}
	sort.Strings(models)

	for _, model := range models {
		mu := s.Models[model]
		fmt.Fprintf(w, "* Model '%s': cost: %v, prompt_tokens: %d, completion_tokens: %d, total_tokens: %d\n",
			model, round5(mu.Cost), mu.PromptTokens, mu.CompletionTokens, mu.TotalTokens)
	}
}

func round5(x float64) float64 {
	return math.Round(x*1e5) / 1e5
}
