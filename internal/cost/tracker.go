// Package cost prices model token usage and aggregates spend across a
// pipeline run.
package cost

import (
	"strings"

	"github.com/epmk/stackflow/internal/pipeline"
)

// Usage holds token counts from an API response.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// ModelPricing holds per-token pricing for a model (in USD per token).
type ModelPricing struct {
	InputPerToken  float64
	OutputPerToken float64
}

// defaultPricing covers the Claude models the stacks dispatch to, keyed by
// full model ID and by the short aliases the CLI accepts.
var defaultPricing = map[string]ModelPricing{
	"claude-3-5-haiku-20241022": {InputPerToken: 0.80 / 1_000_000, OutputPerToken: 4.0 / 1_000_000},
	"claude-sonnet-4-20250514":  {InputPerToken: 3.0 / 1_000_000, OutputPerToken: 15.0 / 1_000_000},
	"claude-opus-4-20250514":    {InputPerToken: 15.0 / 1_000_000, OutputPerToken: 75.0 / 1_000_000},
	"haiku":                     {InputPerToken: 0.80 / 1_000_000, OutputPerToken: 4.0 / 1_000_000},
	"sonnet":                    {InputPerToken: 3.0 / 1_000_000, OutputPerToken: 15.0 / 1_000_000},
	"opus":                      {InputPerToken: 15.0 / 1_000_000, OutputPerToken: 75.0 / 1_000_000},
}

// FromUsage calculates cost from token usage and model pricing.
// Unknown models price at zero.
func FromUsage(model string, usage Usage) float64 {
	pricing, ok := defaultPricing[model]
	if !ok {
		return 0
	}
	return float64(usage.PromptTokens)*pricing.InputPerToken +
		float64(usage.CompletionTokens)*pricing.OutputPerToken
}

// FromPayload reads a step result's "cost" entry, coercing any numeric
// type. Payloads without one cost zero.
func FromPayload(p pipeline.Payload) float64 {
	return p.Float("cost")
}

// Total sums the "cost" entries across step results, skipping the
// orchestrator's reserved "_" entries. Steps without a cost entry count
// as zero.
func Total(results pipeline.Results) float64 {
	var total float64
	for name, p := range results {
		if strings.HasPrefix(name, "_") {
			continue
		}
		total += FromPayload(p)
	}
	return total
}
