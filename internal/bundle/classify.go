package bundle

import "github.com/Chative-fare-advisor/server/internal/agent/model"

// fareCodeIndex is the position of the bundle character in a fare-basis code.
const fareCodeIndex = 6

// Classify maps a fare-basis code to its bundle tier.
func Classify(fareBasis string) model.Tier {
	if len(fareBasis) <= fareCodeIndex {
		return model.TierUnmapped
	}
	if tier, ok := fareCodeTiers[fareBasis[fareCodeIndex]]; ok {
		return tier
	}
	return model.TierUnmapped
}

// Tag classifies every offer and returns copies carrying tier and display code.
func Tag(offers []model.FlightOffer) []model.FlightOffer {
	out := make([]model.FlightOffer, 0, len(offers))
	for _, o := range offers {
		o.BundleTier = Classify(o.RawFareBasis)
		o.FareBasisCode = o.RawFareBasis
		if len(o.RawFareBasis) <= fareCodeIndex {
			o.FareBasisCode = model.FareBasisUnavailable
		}
		out = append(out, o)
	}
	return out
}
