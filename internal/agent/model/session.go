package model

import (
	"sync"
	"time"
)

// Phase is the dialogue phase of a session. It only moves forward.
type Phase string

const (
	PhaseTravelDetails Phase = "travel_details"
	PhasePreferences   Phase = "preferences"
)

// Topic is the slot the last assistant question asked about.
type Topic string

const (
	TopicUnknown       Topic = "unknown"
	TopicLocation      Topic = "location"
	TopicDate          Topic = "date"
	TopicTravelers     Topic = "travelers"
	TopicTripType      Topic = "tripType"
	TopicCarryOn       Topic = "carryOn"
	TopicCheckedBags   Topic = "checkedBags"
	TopicChangePolicy  Topic = "changePolicy"
	TopicSeatSelection Topic = "seatSelection"
	TopicRewards       Topic = "rewardsEarn"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the per-conversation dialogue state.
// Concurrency model:
//   - Callers obtain a session through session.Store.Acquire, which holds mu
//     for the duration of one request.
//   - Fields are only read or written while mu is held.
type Session struct {
	mu sync.Mutex

	ConversationID     string
	Phase              Phase
	Slots              SlotSet
	History            []Turn
	FlightCache        []FlightOffer
	LastRecommendation Tier
	ActiveTopic        Topic
	CreatedAt          time.Time
}

// NewSession returns a fresh session in the travel_details phase.
func NewSession(conversationID string, now time.Time) *Session {
	return &Session{
		ConversationID: conversationID,
		Phase:          PhaseTravelDetails,
		History:        []Turn{},
		FlightCache:    []FlightOffer{},
		ActiveTopic:    TopicUnknown,
		CreatedAt:      now,
	}
}

func (s *Session) Lock()         { s.mu.Lock() }
func (s *Session) Unlock()       { s.mu.Unlock() }
func (s *Session) TryLock() bool { return s.mu.TryLock() }

// AppendTurn records a message at the end of the history.
func (s *Session) AppendTurn(role Role, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content})
}

// Ask records an assistant question together with the topic it asks about.
func (s *Session) Ask(topic Topic, text string) {
	s.ActiveTopic = topic
	s.AppendTurn(RoleAssistant, text)
}

// EnterPreferences moves the session into the preferences phase. It never goes back.
func (s *Session) EnterPreferences() {
	s.Phase = PhasePreferences
}

// ReplaceFlights swaps the cached offers for a fresh search result.
func (s *Session) ReplaceFlights(offers []FlightOffer) {
	cache := make([]FlightOffer, len(offers))
	copy(cache, offers)
	s.FlightCache = cache
}

// HasRecommendation reports whether a bundle has been recommended.
func (s *Session) HasRecommendation() bool {
	return s.LastRecommendation != ""
}
