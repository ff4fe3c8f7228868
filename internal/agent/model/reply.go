package model

// ChatRequest is the inbound chat message.
type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// Reply is the outbound chat response.
type Reply struct {
	Reply          string                 `json:"reply"`
	Recommendation *RecommendationPayload `json:"recommendation,omitempty"`
}

// Feature is one row of a bundle's feature display.
type Feature struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

type Leg struct {
	Origin       string `json:"origin"`
	Dest         string `json:"dest"`
	DepTime      string `json:"depTime"`
	ArrTime      string `json:"arrTime"`
	Date         string `json:"date"`
	FlightNumber string `json:"flightNumber"`
}

type FlightInfo struct {
	Outbound []Leg `json:"outbound"`
	Return   []Leg `json:"return"`
}

type RecommendationPayload struct {
	Title        Tier       `json:"title"`
	Price        string     `json:"price"`
	Reason       []Feature  `json:"reason"`
	Alternatives []Tier     `json:"alternatives"`
	FlightInfo   FlightInfo `json:"flightInfo"`
	FareBasis    string     `json:"fareBasis"`
}
