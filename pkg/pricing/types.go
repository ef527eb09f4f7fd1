package pricing

// Entry contains pricing information for a single model offered by a
// provider. Prices are expressed in minor currency units (cents) per
// 1000 tokens. Read-only configuration data.
type Entry struct {
	// Provider is the provider name (e.g., "openai").
	Provider string `yaml:"provider"`

	// Model is the model name within the provider (e.g., "gpt-4o").
	Model string `yaml:"model"`

	// InputPricePer1K is the price in cents per 1000 input tokens.
	InputPricePer1K float64 `yaml:"input_price_per_1k"`

	// OutputPricePer1K is the price in cents per 1000 output tokens.
	OutputPricePer1K float64 `yaml:"output_price_per_1k"`

	// TokenCeiling is the maximum combined token count the model accepts.
	// Zero means no documented ceiling.
	TokenCeiling int `yaml:"token_ceiling"`
}

// TokenCounts holds the input/output token counts used to price a request.
type TokenCounts struct {
	// Input is the number of prompt tokens.
	Input int

	// Output is the number of completion tokens.
	Output int
}

// Total returns the combined token count.
func (t TokenCounts) Total() int {
	return t.Input + t.Output
}

// CostResult is the computed price of a sized request against a specific
// provider/model pair. Cost is never negative.
type CostResult struct {
	// Provider is the provider the cost was computed for.
	Provider string

	// Model is the model the cost was computed for.
	Model string

	// InputTokens is the input token count used in the calculation.
	InputTokens int

	// OutputTokens is the output token count used in the calculation.
	OutputTokens int

	// Cost is the computed price in minor currency units (cents),
	// rounded to the nearest whole unit.
	Cost int64
}
