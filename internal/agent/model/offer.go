package model

import (
	"math"
	"strconv"
	"strings"
)

// Tier names a fare bundle.
type Tier string

const (
	TierUltraBasic   Tier = "UltraBasic"
	TierEcono        Tier = "Econo"
	TierEconoFlex    Tier = "EconoFlex"
	TierPremium      Tier = "Premium"
	TierPremiumFlex  Tier = "PremiumFlex"
	TierBusiness     Tier = "Business"
	TierBusinessFlex Tier = "BusinessFlex"
	TierUnmapped     Tier = "Unmapped"
)

// FareBasisUnavailable replaces a missing or unusable fare-basis code.
const FareBasisUnavailable = "N/A"

type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// Amount parses Total. Unparseable totals sort after every real price.
func (p Price) Amount() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Total), 64)
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// String formats the price as "CUR amount".
func (p Price) String() string {
	return strings.TrimSpace(p.Currency + " " + p.Total)
}

type Segment struct {
	DepartureIATA string `json:"departureIata"`
	DepartureAt   string `json:"departureAt"`
	ArrivalIATA   string `json:"arrivalIata"`
	ArrivalAt     string `json:"arrivalAt"`
	CarrierCode   string `json:"carrierCode"`
	Number        string `json:"number"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// FlightOffer is a priced itinerary as cached on the session.
type FlightOffer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
	// RawFareBasis is the provider's code for the first traveler's first segment.
	RawFareBasis string `json:"rawFareBasis"`

	BundleTier    Tier   `json:"bundleTier"`
	FareBasisCode string `json:"fareBasisCode"`
}

// SearchQuery is what the dialogue hands to the flight-offer provider.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate Date
	// ReturnDate is nil for one-way trips.
	ReturnDate *Date
	Adults     int
	Currency   string
	Airline    string
}
