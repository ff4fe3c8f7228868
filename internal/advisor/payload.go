package advisor

import (
	"strings"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	"github.com/Chative-fare-advisor/server/internal/bundle"
)

const unknownTime = "??:??"

func buildPayload(rec *bundle.Recommendation) *model.RecommendationPayload {
	features, ok := bundle.FeaturesOf(rec.Tier)
	if !ok || features == nil {
		features = []model.Feature{}
	}
	alts := rec.Alternatives
	if alts == nil {
		alts = []model.Tier{}
	}

	info := model.FlightInfo{Outbound: []model.Leg{}, Return: []model.Leg{}}
	if its := rec.Offer.Itineraries; len(its) > 0 {
		info.Outbound = legs(its[0].Segments)
		if len(its) > 1 {
			info.Return = legs(its[1].Segments)
		}
	}

	return &model.RecommendationPayload{
		Title:        rec.Tier,
		Price:        rec.Offer.Price.String(),
		Reason:       features,
		Alternatives: alts,
		FlightInfo:   info,
		FareBasis:    rec.Offer.FareBasisCode,
	}
}

func legs(segments []model.Segment) []model.Leg {
	out := make([]model.Leg, 0, len(segments))
	for _, seg := range segments {
		date, _, _ := strings.Cut(seg.DepartureAt, "T")
		out = append(out, model.Leg{
			Origin:       seg.DepartureIATA,
			Dest:         seg.ArrivalIATA,
			DepTime:      timeOfDay(seg.DepartureAt),
			ArrTime:      timeOfDay(seg.ArrivalAt),
			Date:         date,
			FlightNumber: seg.CarrierCode + seg.Number,
		})
	}
	return out
}

// timeOfDay returns the HH:MM part of a provider timestamp.
func timeOfDay(at string) string {
	_, clock, ok := strings.Cut(at, "T")
	if !ok || len(clock) < 5 {
		return unknownTime
	}
	return clock[:5]
}
