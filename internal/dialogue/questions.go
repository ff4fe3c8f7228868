package dialogue

import (
	"fmt"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

// Question is an assistant prompt together with the slot topic it targets.
type Question struct {
	Topic model.Topic
	Text  string
}

var (
	askOrigin        = Question{model.TopicLocation, "Where are you flying from?"}
	askDestination   = Question{model.TopicLocation, "Where are you flying to?"}
	askDeparture     = Question{model.TopicDate, "What date would you like to depart?"}
	askTravelers     = Question{model.TopicTravelers, "How many guests are travelling?"}
	askReturn        = Question{model.TopicTripType, "Is this a round-trip? If so, when are you returning?"}
	askCarryOn       = Question{model.TopicCarryOn, "Will you be bringing a carry-on bag?"}
	askCheckedBags   = Question{model.TopicCheckedBags, "How many checked bags will you have?"}
	askChangePolicy  = Question{model.TopicChangePolicy, "Do you prefer the flexibility to change your flight, or is getting the lowest price your priority?"}
	askSeatSelection = Question{model.TopicSeatSelection, "Is choosing your specific seat important to you? (Yes / No)"}
	askRewards       = Question{model.TopicRewards, "Do you want to earn loyalty points on this trip?"}
)

// clarifyCity asks which endpoint an ambiguous city name refers to.
func clarifyCity(city string) Question {
	return Question{
		Topic: model.TopicLocation,
		Text:  fmt.Sprintf("Just to clarify, is %s where you are leaving from or going to?", city),
	}
}

// Fixed assistant texts used around the search and recommendation steps.
const (
	FlightsFoundIntro = "I found flights! To pick the best bundle, I need to ask a few quick questions.\n\nFirst: "
	NoFlightsText     = "I couldn't find flights for those dates. Please try different dates."
	SearchErrorText   = "System error finding flights. Please try again in a moment."
	OffTopicText      = "I can only answer questions about bundle features (Bags, Seats, Changes, Rewards). For other inquiries, please visit westjet.com or call 1-888-WESTJET."
)

// NoFlights is the reply after an empty search; it asks for a new departure date.
func NoFlights() Question {
	return Question{Topic: model.TopicDate, Text: NoFlightsText}
}

// RecommendationText introduces the recommended bundle.
func RecommendationText(tier model.Tier) string {
	return fmt.Sprintf("I recommend the %s bundle.", tier)
}
