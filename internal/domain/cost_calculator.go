package domain

import (
	"context"
	"errors"
)

const tokensToPerK = 1000.0

// TokenEstimate is the assumed token volume of one re-ranking request.
type TokenEstimate struct {
	InputTokensPerRequest  int
	OutputTokensPerRequest int
}

// StandardCostCalculator implements standard token-based cost calculation.
type StandardCostCalculator struct {
	pricingRegistry PricingRegistry
}

// NewStandardCostCalculator creates a new cost calculator.
func NewStandardCostCalculator(registry PricingRegistry) *StandardCostCalculator {
	return &StandardCostCalculator{
		pricingRegistry: registry,
	}
}

// Calculate computes input, output and total cost based on token usage and model pricing.
func (c *StandardCostCalculator) Calculate(
	ctx context.Context,
	model string,
	usage Usage,
) (*CostBreakdown, error) {
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	breakdown := &CostBreakdown{
		Model:        model,
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
	}

	pricing, err := c.pricingRegistry.GetPricing(ctx, model)
	if err != nil {
		// If pricing not found, return 0 cost (not an error for the request)
		//nolint:nilerr // Intentionally returning nil to allow requests with unknown pricing
		return breakdown, nil
	}

	breakdown.InputCost = float64(usage.PromptTokens) / tokensToPerK * pricing.InputCostPer1K
	breakdown.OutputCost = float64(usage.CompletionTokens) / tokensToPerK * pricing.OutputCostPer1K
	breakdown.TotalCost = breakdown.InputCost + breakdown.OutputCost

	return breakdown, nil
}

// EstimateRerankCost prices tokensPerRequest x aiTopK x jobsProcessed for input and
// output separately.
func EstimateRerankCost(
	ctx context.Context,
	calculator CostCalculator,
	model string,
	tokens TokenEstimate,
	aiTopK int,
	jobsProcessed int,
) (*CostBreakdown, error) {
	requests := aiTopK * jobsProcessed
	return calculator.Calculate(ctx, model, Usage{
		PromptTokens:     tokens.InputTokensPerRequest * requests,
		CompletionTokens: tokens.OutputTokensPerRequest * requests,
		TotalTokens:      (tokens.InputTokensPerRequest + tokens.OutputTokensPerRequest) * requests,
	})
}
