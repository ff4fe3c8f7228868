package model

import (
	"context"
	"time"
)

// ExtractInput is everything the language oracle sees for one user message.
type ExtractInput struct {
	Today   time.Time
	Topic   Topic
	Slots   SlotSet
	Message string
	Recent  []Turn
}

// SlotExtractor maps free text to a partial slot update.
type SlotExtractor interface {
	Extract(ctx context.Context, in ExtractInput) (*SlotUpdate, error)
}

// AnswerInput is a follow-up question about the recommended bundle.
type AnswerInput struct {
	Question string
	Tier     Tier
	Rules    string
}

// BundleAnswerer answers follow-up questions about a bundle.
type BundleAnswerer interface {
	Answer(ctx context.Context, in AnswerInput) (string, error)
}

// FlightSearcher retrieves priced offers from the flight-offer provider.
type FlightSearcher interface {
	Search(ctx context.Context, q SearchQuery) ([]FlightOffer, error)
}
