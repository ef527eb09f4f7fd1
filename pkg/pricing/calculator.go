package pricing

import (
	"log/slog"
	"math"
)

// Calculator computes request costs against a price table. It is
// stateless apart from the immutable table and safe for concurrent use.
type Calculator struct {
	table  *Table
	logger *slog.Logger
}

// NewCalculator creates a cost calculator over the given table.
// A nil table falls back to the built-in default table.
func NewCalculator(table *Table) *Calculator {
	if table == nil {
		table = DefaultTable()
	}
	return &Calculator{
		table:  table,
		logger: slog.Default().With("component", "pricing.calculator"),
	}
}

// Table returns the price table the calculator operates on.
func (c *Calculator) Table() *Table {
	return c.table
}

// Calculate prices the given token counts against the provider/model entry.
//
// The cost is input/1000 * inputPrice + output/1000 * outputPrice, rounded
// to the nearest whole minor currency unit. The result is deterministic in
// the token counts and the matching entry, and never negative.
//
// If the provider or model is not in the table, Calculate returns a
// zero-cost result along with an UnknownProviderError or UnknownModelError
// and logs a warning. The zero result preserves the lenient behavior for
// callers that do not check the error; budget-sensitive callers must check
// it, since a zero cost bypasses any spend ceiling.
func (c *Calculator) Calculate(provider, model string, tokens TokenCounts) (CostResult, error) {
	result := CostResult{
		Provider:     provider,
		Model:        model,
		InputTokens:  tokens.Input,
		OutputTokens: tokens.Output,
	}

	if !c.table.HasProvider(provider) {
		c.logger.Warn("cost calculation for unknown provider",
			"provider", provider,
			"model", model,
		)
		return result, &UnknownProviderError{Provider: provider}
	}

	entry, ok := c.table.Lookup(provider, model)
	if !ok {
		c.logger.Warn("cost calculation for unknown model",
			"provider", provider,
			"model", model,
		)
		return result, &UnknownModelError{Provider: provider, Model: model}
	}

	result.Cost = costFor(entry, tokens)
	return result, nil
}

// costFor computes the rounded cost of the token counts under the entry.
func costFor(entry Entry, tokens TokenCounts) int64 {
	inputCost := float64(tokens.Input) / 1000.0 * entry.InputPricePer1K
	outputCost := float64(tokens.Output) / 1000.0 * entry.OutputPricePer1K

	cost := int64(math.Round(inputCost + outputCost))
	if cost < 0 {
		cost = 0
	}
	return cost
}
