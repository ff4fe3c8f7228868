// Package dialogue decides, from the slots gathered so far, what the assistant
// asks next or which side-effecting step runs.
package dialogue

import "github.com/Chative-fare-advisor/server/internal/agent/model"

type Action int

const (
	// ActionAsk means Step.Question should be sent to the user.
	ActionAsk Action = iota
	// ActionSearch means the trip is complete and Step.Query should be searched.
	ActionSearch
	// ActionRecommend means every preference is known and bundles should be scored.
	ActionRecommend
)

func (a Action) String() string {
	switch a {
	case ActionAsk:
		return "ask"
	case ActionSearch:
		return "search"
	case ActionRecommend:
		return "recommend"
	default:
		return "unknown"
	}
}

// Step is the outcome of one evaluation of the state machine.
type Step struct {
	Action   Action
	Question Question
	Query    model.SearchQuery
}

// Machine evaluates the slot-filling order of both phases.
type Machine struct {
	currency string
	airline  string
}

func NewMachine(cfg model.SearchConfig) *Machine {
	return &Machine{currency: cfg.Currency, airline: cfg.Airline}
}

// Next returns the single next step for the given phase and slots.
// An ambiguous city with an unknown endpoint always wins.
func (m *Machine) Next(phase model.Phase, s *model.SlotSet) Step {
	if s.AmbiguousCity != nil && (s.Origin == nil || s.Destination == nil) {
		return ask(clarifyCity(*s.AmbiguousCity))
	}

	if phase == model.PhaseTravelDetails {
		if q, ok := nextTripQuestion(s); ok {
			return ask(q)
		}
		return Step{Action: ActionSearch, Query: m.query(s)}
	}

	if q, ok := NextPreferenceQuestion(s); ok {
		return ask(q)
	}
	return Step{Action: ActionRecommend}
}

func nextTripQuestion(s *model.SlotSet) (Question, bool) {
	switch {
	case s.Origin == nil:
		return askOrigin, true
	case s.Destination == nil:
		return askDestination, true
	case s.DepartureDate == nil:
		return askDeparture, true
	case s.Travelers == nil:
		return askTravelers, true
	case !s.IsOneWay() && s.ReturnDate == nil:
		return askReturn, true
	}
	return Question{}, false
}

// NextPreferenceQuestion returns the first unanswered preference question.
func NextPreferenceQuestion(s *model.SlotSet) (Question, bool) {
	switch {
	case s.CarryOn == nil:
		return askCarryOn, true
	case s.CheckedBags == nil:
		return askCheckedBags, true
	case s.ChangePolicy == nil:
		return askChangePolicy, true
	case s.SeatSelection == nil:
		return askSeatSelection, true
	case s.RewardsEarn == nil:
		return askRewards, true
	}
	return Question{}, false
}

func (m *Machine) query(s *model.SlotSet) model.SearchQuery {
	q := model.SearchQuery{
		Origin:        AirportCode(*s.Origin),
		Destination:   AirportCode(*s.Destination),
		DepartureDate: *s.DepartureDate,
		Adults:        *s.Travelers,
		Currency:      m.currency,
		Airline:       m.airline,
	}
	if !s.IsOneWay() && s.ReturnDate != nil && !s.ReturnDate.NotApplicable() {
		q.ReturnDate = model.Ptr(*s.ReturnDate)
	}
	return q
}

func ask(q Question) Step {
	return Step{Action: ActionAsk, Question: q}
}
