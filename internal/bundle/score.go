package bundle

import "github.com/Chative-fare-advisor/server/internal/agent/model"

// Penalties dominate any realistic price difference; bonuses never offset them.
const (
	penaltyFlexibility   = 1000.0
	penaltyRewards       = 500.0
	penaltyCarryOn       = 500.0
	penaltySeatSelection = 200.0

	bonusFlexibility = 50.0
	bonusRewards     = 20.0

	priceDivisor = 10000.0
)

// Score rates how well tier fits the preference slots at the given price.
// Higher is better.
func Score(prefs model.SlotSet, tier model.Tier, price float64) float64 {
	caps, ok := CapabilitiesOf(tier)
	if !ok {
		caps = UnmappedCapabilities
	}

	wantsFlex := prefs.ChangePolicy != nil && *prefs.ChangePolicy == model.ChangeFlexible
	wantsRewards := prefs.RewardsEarn != nil && *prefs.RewardsEarn
	wantsCarryOn := prefs.CarryOn != nil && *prefs.CarryOn
	wantsSeat := prefs.SeatSelection != nil && *prefs.SeatSelection == model.SeatIncluded

	score := 0.0
	if wantsFlex && caps.Flexibility == 0 {
		score -= penaltyFlexibility
	}
	if wantsRewards && caps.Rewards == 0 {
		score -= penaltyRewards
	}
	if wantsCarryOn && caps.CarryOn == 0 {
		score -= penaltyCarryOn
	}
	if wantsSeat && caps.SeatSelection == 0 {
		score -= penaltySeatSelection
	}

	if wantsFlex && caps.Flexibility == 1 {
		score += bonusFlexibility
	}
	if wantsRewards && caps.Rewards == 1 {
		score += bonusRewards
	}

	score -= price / priceDivisor
	return score
}
