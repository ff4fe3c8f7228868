// Package bundle classifies fare offers into bundle tiers and recommends the
// tier that best fits a traveller's preferences.
package bundle

import "github.com/Chative-fare-advisor/server/internal/agent/model"

// Capabilities is the fixed capability vector of a tier; 1 means included.
type Capabilities struct {
	CarryOn       int
	CheckedBags   int
	Flexibility   int
	SeatSelection int
	Rewards       int
}

// hierarchy orders the known tiers from lowest to highest.
var hierarchy = [...]model.Tier{
	model.TierUltraBasic,
	model.TierEcono,
	model.TierEconoFlex,
	model.TierPremium,
	model.TierPremiumFlex,
	model.TierBusiness,
	model.TierBusinessFlex,
}

// fareCodeTiers maps the 7th fare-basis character to a tier.
var fareCodeTiers = map[byte]model.Tier{
	'B': model.TierUltraBasic,
	'E': model.TierEcono,
	'F': model.TierEconoFlex,
	'P': model.TierPremium,
	'R': model.TierPremiumFlex,
	'N': model.TierBusiness,
	'J': model.TierBusinessFlex,
}

var capabilities = map[model.Tier]Capabilities{
	model.TierUltraBasic:   {},
	model.TierEcono:        {CarryOn: 1, Rewards: 1},
	model.TierEconoFlex:    {CarryOn: 1, CheckedBags: 1, Flexibility: 1, SeatSelection: 1, Rewards: 1},
	model.TierPremium:      {CarryOn: 1, CheckedBags: 1, SeatSelection: 1, Rewards: 1},
	model.TierPremiumFlex:  {CarryOn: 1, CheckedBags: 1, Flexibility: 1, SeatSelection: 1, Rewards: 1},
	model.TierBusiness:     {CarryOn: 1, CheckedBags: 1, SeatSelection: 1, Rewards: 1},
	model.TierBusinessFlex: {CarryOn: 1, CheckedBags: 1, Flexibility: 1, SeatSelection: 1, Rewards: 1},
}

// UnmappedCapabilities applies to offers whose fare basis is not recognised.
var UnmappedCapabilities = Capabilities{CarryOn: 1}

var rules = map[model.Tier]string{
	model.TierUltraBasic:   "Carry-on: NO (Personal item only). Checked Bags: Fee. Seats: Fee (Back). Changes: No. Refunds: No.",
	model.TierEcono:        "Carry-on: YES. Checked Bags: Fee. Seats: Fee. Changes: Fee. Refunds: Credit only.",
	model.TierEconoFlex:    "Carry-on: YES. Checked Bags: 1 Free. Seats: Included. Changes: Free. Refunds: Fully refundable.",
	model.TierPremium:      "Carry-on: YES. Checked Bags: 2 Free. Seats: Premium. Changes: Fee. Refunds: Credit only.",
	model.TierPremiumFlex:  "Carry-on: YES. Checked Bags: 2 Free. Seats: Premium. Changes: Free. Refunds: Fully refundable.",
	model.TierBusiness:     "Carry-on: YES. Checked Bags: 2 Free. Seats: Business. Changes: Fee. Refunds: Credit only.",
	model.TierBusinessFlex: "Carry-on: YES. Checked Bags: 2 Free. Seats: Business. Changes: Free. Refunds: Fully refundable.",
}

const (
	iconYes = "✅"
	iconNo  = "❌"
	iconFee = "💲"
)

const (
	labelCarryOn = "Carry-on baggage"
	labelChecked = "Checked baggage"
	labelSeat    = "Seat selection"
	labelChange  = "Change or cancel"
	labelRewards = "Rewards"
)

var features = map[model.Tier][]model.Feature{
	model.TierUltraBasic: {
		{Label: labelCarryOn, Value: "No (Personal item only)", Icon: iconNo},
		{Label: labelChecked, Value: "For a fee", Icon: iconFee},
		{Label: labelSeat, Value: "For a fee (Back of plane)", Icon: iconFee},
		{Label: labelChange, Value: "Not allowed", Icon: iconNo},
		{Label: labelRewards, Value: "No", Icon: iconNo},
	},
	model.TierEcono: {
		{Label: labelCarryOn, Value: "Included", Icon: iconYes},
		{Label: labelChecked, Value: "For a fee", Icon: iconFee},
		{Label: labelSeat, Value: "For a fee", Icon: iconFee},
		{Label: labelChange, Value: "Fee applies", Icon: iconFee},
		{Label: labelRewards, Value: "Yes", Icon: iconYes},
	},
	model.TierEconoFlex: {
		{Label: labelCarryOn, Value: "Included", Icon: iconYes},
		{Label: labelChecked, Value: "1st bag free", Icon: iconYes},
		{Label: labelSeat, Value: "Standard seat free", Icon: iconYes},
		{Label: labelChange, Value: "No fee", Icon: iconYes},
		{Label: labelRewards, Value: "Yes", Icon: iconYes},
	},
	model.TierPremium: {
		{Label: labelCarryOn, Value: "Included", Icon: iconYes},
		{Label: labelChecked, Value: "2 free bags", Icon: iconYes},
		{Label: labelSeat, Value: "Premium seat free", Icon: iconYes},
		{Label: labelChange, Value: "Fee applies", Icon: iconFee},
		{Label: labelRewards, Value: "Yes (Higher earn)", Icon: iconYes},
	},
	model.TierPremiumFlex: {
		{Label: labelCarryOn, Value: "Included", Icon: iconYes},
		{Label: labelChecked, Value: "2 free bags", Icon: iconYes},
		{Label: labelSeat, Value: "Premium seat free", Icon: iconYes},
		{Label: labelChange, Value: "No fee", Icon: iconYes},
		{Label: labelRewards, Value: "Yes (Higher earn)", Icon: iconYes},
	},
	model.TierBusiness: {
		{Label: labelCarryOn, Value: "Included", Icon: iconYes},
		{Label: labelChecked, Value: "2 free bags", Icon: iconYes},
		{Label: labelSeat, Value: "Business seat free", Icon: iconYes},
		{Label: labelChange, Value: "Fee applies", Icon: iconFee},
		{Label: labelRewards, Value: "Yes (Highest earn)", Icon: iconYes},
	},
	model.TierBusinessFlex: {
		{Label: labelCarryOn, Value: "Included", Icon: iconYes},
		{Label: labelChecked, Value: "2 free bags", Icon: iconYes},
		{Label: labelSeat, Value: "Business seat free", Icon: iconYes},
		{Label: labelChange, Value: "No fee", Icon: iconYes},
		{Label: labelRewards, Value: "Yes (Highest earn)", Icon: iconYes},
	},
}

// Hierarchy returns the known tiers ordered from lowest to highest.
func Hierarchy() []model.Tier {
	out := make([]model.Tier, len(hierarchy))
	copy(out, hierarchy[:])
	return out
}

// CapabilitiesOf returns the capability vector of tier and whether the tier is known.
func CapabilitiesOf(tier model.Tier) (Capabilities, bool) {
	c, ok := capabilities[tier]
	return c, ok
}

// FeaturesOf returns a copy of the tier's feature display and whether the tier is known.
func FeaturesOf(tier model.Tier) ([]model.Feature, bool) {
	f, ok := features[tier]
	if !ok {
		return nil, false
	}
	out := make([]model.Feature, len(f))
	copy(out, f)
	return out, true
}

// RulesOf returns the tier's fare rules text and whether the tier is known.
func RulesOf(tier model.Tier) (string, bool) {
	r, ok := rules[tier]
	return r, ok
}
