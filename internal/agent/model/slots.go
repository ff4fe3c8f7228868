package model

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form, or DateNotApplicable.
type Date string

// DateNotApplicable marks a return date on a one-way trip.
const DateNotApplicable Date = "N/A"

// ParseDate validates s as a calendar day or the not-applicable sentinel.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(DateNotApplicable)) {
		return DateNotApplicable, nil
	}
	// tolerate full timestamps, only the day matters
	if len(s) > len(dateLayout) && s[len(dateLayout)] == 'T' {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// NotApplicable reports whether d is the one-way sentinel.
func (d Date) NotApplicable() bool {
	return d == DateNotApplicable
}

// Time returns midnight UTC of the day, false for the sentinel or malformed values.
func (d Date) Time() (time.Time, bool) {
	if d.NotApplicable() {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Date) String() string {
	return string(d)
}

type TripType string

const (
	TripRoundTrip TripType = "round-trip"
	TripOneWay    TripType = "one-way"
)

type ChangePolicy string

const (
	ChangeFlexible      ChangePolicy = "flexible"
	ChangePricePriority ChangePolicy = "price-priority"
)

type SeatSelection string

const (
	SeatIncluded SeatSelection = "included"
	SeatCheapest SeatSelection = "cheapest"
)

// SlotSet holds the trip and preference facts gathered so far. Nil means unresolved.
type SlotSet struct {
	Origin        *string   `json:"origin"`
	Destination   *string   `json:"destination"`
	DepartureDate *Date     `json:"departureDate"`
	ReturnDate    *Date     `json:"returnDate"`
	Travelers     *int      `json:"travelers"`
	AmbiguousCity *string   `json:"ambiguousCity"`
	TripType      *TripType `json:"tripType"`

	CarryOn       *bool          `json:"carryOn"`
	CheckedBags   *int           `json:"checkedBags"`
	ChangePolicy  *ChangePolicy  `json:"changePolicy"`
	SeatSelection *SeatSelection `json:"seatSelection"`
	RewardsEarn   *bool          `json:"rewardsEarn"`
}

// IsOneWay reports whether the trip has no return leg.
func (s *SlotSet) IsOneWay() bool {
	if s.TripType != nil && *s.TripType == TripOneWay {
		return true
	}
	return s.ReturnDate != nil && s.ReturnDate.NotApplicable()
}

// Merge copies every resolved field of u into s, then clears AmbiguousCity once
// both endpoints are known.
func (s *SlotSet) Merge(u SlotSet) {
	if u.Origin != nil {
		s.Origin = u.Origin
	}
	if u.Destination != nil {
		s.Destination = u.Destination
	}
	if u.DepartureDate != nil {
		s.DepartureDate = u.DepartureDate
	}
	if u.ReturnDate != nil {
		s.ReturnDate = u.ReturnDate
	}
	if u.Travelers != nil {
		s.Travelers = u.Travelers
	}
	if u.AmbiguousCity != nil {
		s.AmbiguousCity = u.AmbiguousCity
	}
	if u.TripType != nil {
		s.TripType = u.TripType
	}
	if u.CarryOn != nil {
		s.CarryOn = u.CarryOn
	}
	if u.CheckedBags != nil {
		s.CheckedBags = u.CheckedBags
	}
	if u.ChangePolicy != nil {
		s.ChangePolicy = u.ChangePolicy
	}
	if u.SeatSelection != nil {
		s.SeatSelection = u.SeatSelection
	}
	if u.RewardsEarn != nil {
		s.RewardsEarn = u.RewardsEarn
	}
	if s.Origin != nil && s.Destination != nil {
		s.AmbiguousCity = nil
	}
}

// Intent tags an oracle result that is not a slot answer.
type Intent string

const (
	IntentNone     Intent = ""
	IntentQuestion Intent = "question"
)

// SlotUpdate is the validated partial update produced by the language oracle.
type SlotUpdate struct {
	SlotSet
	Intent Intent `json:"intent,omitempty"`
}

// Empty reports whether the update carries neither slots nor an intent.
func (u *SlotUpdate) Empty() bool {
	return u == nil || (u.SlotSet == SlotSet{} && u.Intent == IntentNone)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
