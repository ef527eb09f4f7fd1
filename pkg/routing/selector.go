package routing

import (
	"log/slog"

	"dealerscope/saturn/pkg/pricing"
)

// Selector picks the cheapest provider/model pair meeting a request's
// constraints. It is stateless apart from the immutable calculator and
// safe for concurrent use.
type Selector struct {
	calc   *pricing.Calculator
	logger *slog.Logger
}

// NewSelector creates a selector over the given calculator. A nil
// calculator falls back to one over the built-in default price table.
func NewSelector(calc *pricing.Calculator) *Selector {
	if calc == nil {
		calc = pricing.NewCalculator(nil)
	}
	return &Selector{
		calc:   calc,
		logger: slog.Default().With("component", "routing.selector"),
	}
}

// SelectOptimal enumerates every pair in the price table in its fixed
// order, prices the estimated workload against each, and returns the
// cheapest pair that:
//
//   - accepts the workload within its token ceiling,
//   - costs no more than constraints.MaxCost (when non-zero), and
//   - is classified at or above constraints.MinTier.
//
// Cost ties keep the first pair encountered in table order. When nothing
// survives, a NoCandidatesError is returned; the caller must treat that
// as a hard stop for the request.
func (s *Selector) SelectOptimal(tokens pricing.TokenCounts, constraints Constraints) (*Choice, error) {
	entries := s.calc.Table().Entries()

	var best *Choice
	for _, entry := range entries {
		if entry.TokenCeiling > 0 && tokens.Total() > entry.TokenCeiling {
			continue
		}

		result, err := s.calc.Calculate(entry.Provider, entry.Model, tokens)
		if err != nil {
			// Entries come from the table itself, so this cannot miss;
			// skip defensively if it ever does.
			continue
		}

		if constraints.MaxCost > 0 && result.Cost > constraints.MaxCost {
			continue
		}

		tier := TierFor(entry)
		if tier < constraints.MinTier {
			continue
		}

		if best == nil || result.Cost < best.Cost.Cost {
			best = &Choice{
				Provider: entry.Provider,
				Model:    entry.Model,
				Cost:     result,
				Tier:     tier,
				Timeout:  constraints.Timeout,
			}
		}
	}

	if best == nil {
		s.logger.Warn("no provider candidates meet constraints",
			"pairs", len(entries),
			"max_cost", constraints.MaxCost,
			"min_tier", constraints.MinTier.String(),
			"tokens", tokens.Total(),
		)
		return nil, &NoCandidatesError{Evaluated: len(entries), Constraints: constraints}
	}

	s.logger.Debug("provider selected",
		"provider", best.Provider,
		"model", best.Model,
		"cost", best.Cost.Cost,
		"tier", best.Tier.String(),
	)
	return best, nil
}
