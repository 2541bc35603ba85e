package gemini

import (
	"context"
	"fmt"

	"github.com/davidbz/matchwise/internal/domain"
)

// Pricing returns the Gemini price table, USD per 1K tokens.
func Pricing() map[string]domain.PricingConfig {
	return map[string]domain.PricingConfig{
		"gemini-2.0-flash":   {InputCostPer1K: 0.0001, OutputCostPer1K: 0.0004},
		"gemini-2.5-flash":   {InputCostPer1K: 0.0003, OutputCostPer1K: 0.0025},
		"gemini-2.5-pro":     {InputCostPer1K: 0.00125, OutputCostPer1K: 0.01},
		"gemini-1.5-flash":   {InputCostPer1K: 0.000075, OutputCostPer1K: 0.0003},
		"text-embedding-004": {},
	}
}

// RegisterPricing registers Gemini model pricing with the registry.
func RegisterPricing(ctx context.Context, registry domain.PricingRegistry) error {
	for model, config := range Pricing() {
		if err := registry.RegisterPricing(ctx, model, config); err != nil {
			return fmt.Errorf("failed to register pricing for model %s: %w", model, err)
		}
	}
	return nil
}
