package llm

import "strings"

// Price holds USD prices per one million tokens
type Price struct {
	Input  float64
	Output float64
}

// modelPrices covers the models the bundled providers ship. Providers
// report dated or vendor-prefixed identifiers (gpt-4o-2024-08-06,
// anthropic.claude-3-5-sonnet-20241022-v2:0), resolved by the longest
// matching family name.
var modelPrices = map[string]Price{
	"gpt-4o":            {Input: 2.50, Output: 10.00},
	"gpt-4o-mini":       {Input: 0.15, Output: 0.60},
	"gpt-4.1":           {Input: 2.00, Output: 8.00},
	"gpt-4.1-mini":      {Input: 0.40, Output: 1.60},
	"claude-3-5-sonnet": {Input: 3.00, Output: 15.00},
	"claude-3-5-haiku":  {Input: 0.80, Output: 4.00},
	"claude-sonnet-4":   {Input: 3.00, Output: 15.00},
	"gemini-2.5-pro":    {Input: 1.25, Output: 10.00},
	"gemini-2.5-flash":  {Input: 0.30, Output: 2.50},
	"gemini-2.0-flash":  {Input: 0.10, Output: 0.40},
}

// PriceFor resolves the price for a model identifier. Exact matches
// win; otherwise the longest family name contained in the identifier
// is used. Unknown models report no price.
func PriceFor(model string) (Price, bool) {
	if p, ok := modelPrices[model]; ok {
		return p, true
	}
	var (
		bestName  string
		bestPrice Price
		found     bool
	)
	for name, p := range modelPrices {
		if strings.Contains(model, name) && len(name) > len(bestName) {
			bestName, bestPrice, found = name, p, true
		}
	}
	return bestPrice, found
}

// CostFor computes the USD cost of a call. Unknown models cost zero;
// their token counts are still worth tracking upstream.
func CostFor(model string, promptTokens, completionTokens int64) float64 {
	p, ok := PriceFor(model)
	if !ok {
		return 0
	}
	return (float64(promptTokens)*p.Input + float64(completionTokens)*p.Output) / 1e6
}
