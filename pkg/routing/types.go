package routing

import (
	"fmt"
	"time"

	"dealerscope/saturn/pkg/pricing"
)

// Tier is a coarse cost-based quality classification of a provider/model
// pair. Tiers are totally ordered: TierBasic < TierGood < TierPremium.
type Tier int

const (
	// TierBasic covers the cheapest models.
	TierBasic Tier = iota
	// TierGood covers mid-priced models.
	TierGood
	// TierPremium covers the most expensive models.
	TierPremium
)

// Combined per-1K price boundaries between tiers, in cents.
const (
	goodPriceBoundary    = 0.1
	premiumPriceBoundary = 1.0
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierGood:
		return "good"
	case TierPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// ParseTier parses a tier name as produced by String.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "basic":
		return TierBasic, nil
	case "good":
		return TierGood, nil
	case "premium":
		return TierPremium, nil
	default:
		return TierBasic, fmt.Errorf("unknown tier: %s", s)
	}
}

// TierFor classifies a pricing entry by its combined per-1K list price.
func TierFor(entry pricing.Entry) Tier {
	combined := entry.InputPricePer1K + entry.OutputPricePer1K
	switch {
	case combined >= premiumPriceBoundary:
		return TierPremium
	case combined >= goodPriceBoundary:
		return TierGood
	default:
		return TierBasic
	}
}

// Constraints restricts provider selection.
type Constraints struct {
	// MaxCost is the maximum acceptable cost in minor currency units.
	// Zero means no cost limit.
	MaxCost int64

	// MinTier is the minimum acceptable quality tier.
	MinTier Tier

	// Timeout is the dispatch timeout the caller intends to apply. It
	// does not filter candidates; it is carried through to the Choice
	// for the layer that performs the network call.
	Timeout time.Duration
}

// Choice is a selected provider/model pair with its priced workload.
type Choice struct {
	// Provider is the selected provider name.
	Provider string

	// Model is the selected model name.
	Model string

	// Cost is the cost result for the estimated workload.
	Cost pricing.CostResult

	// Tier is the pair's quality tier.
	Tier Tier

	// Timeout is the dispatch timeout carried from the constraints.
	Timeout time.Duration
}
