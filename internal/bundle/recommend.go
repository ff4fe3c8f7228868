package bundle

import (
	"errors"
	"sort"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

// maxAlternatives caps the alternative tiers offered next to the winner.
const maxAlternatives = 2

var ErrNoOffers = errors.New("bundle: no offers to rank")

// Ranked is one tier with its cheapest offer and score.
type Ranked struct {
	Tier  model.Tier
	Offer model.FlightOffer
	Score float64
}

// Recommendation is the winning tier plus the ranking it came from.
type Recommendation struct {
	Tier         model.Tier
	Offer        model.FlightOffer
	Score        float64
	Alternatives []model.Tier
	Ranking      []Ranked
}

// Cheapest returns the lowest priced offer per tier, tiers in first-seen order.
// Ties on price keep the earlier offer.
func Cheapest(offers []model.FlightOffer) []Ranked {
	index := make(map[model.Tier]int)
	var out []Ranked
	for _, o := range offers {
		i, seen := index[o.BundleTier]
		if !seen {
			index[o.BundleTier] = len(out)
			out = append(out, Ranked{Tier: o.BundleTier, Offer: o})
			continue
		}
		if o.Price.Amount() < out[i].Offer.Price.Amount() {
			out[i].Offer = o
		}
	}
	return out
}

// Recommend scores every tier present in offers from scratch and picks the best.
func Recommend(offers []model.FlightOffer, prefs model.SlotSet) (*Recommendation, error) {
	ranking := Cheapest(offers)
	if len(ranking) == 0 {
		return nil, ErrNoOffers
	}
	for i := range ranking {
		ranking[i].Score = Score(prefs, ranking[i].Tier, ranking[i].Offer.Price.Amount())
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	top := ranking[0]
	return &Recommendation{
		Tier:         top.Tier,
		Offer:        top.Offer,
		Score:        top.Score,
		Alternatives: Alternatives(offers, top.Tier),
		Ranking:      ranking,
	}, nil
}

// Alternatives walks the hierarchy from low to high and returns up to two tiers
// present in offers, excluding the winner.
func Alternatives(offers []model.FlightOffer, winner model.Tier) []model.Tier {
	present := make(map[model.Tier]bool, len(offers))
	for _, o := range offers {
		present[o.BundleTier] = true
	}
	alts := make([]model.Tier, 0, maxAlternatives)
	for _, t := range hierarchy {
		if len(alts) == maxAlternatives {
			break
		}
		if t != winner && present[t] {
			alts = append(alts, t)
		}
	}
	return alts
}
