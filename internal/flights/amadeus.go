package flights

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	errx "github.com/Chative-fare-advisor/server/internal/core/error"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

const (
	tokenPath  = "/v1/security/oauth2/token"
	offersPath = "/v2/shopping/flight-offers"
)

// Client searches the Amadeus flight-offers API.
type Client struct {
	http       *resty.Client
	maxResults int
}

// NewClient builds a client whose transport fetches and refreshes the
// client-credentials token on demand.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("amadeus client credentials are required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("amadeus base url is required")
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     base + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	hc := cc.Client(tokenCtx)
	hc.Timeout = cfg.Timeout

	rc := resty.NewWithClient(hc).
		SetBaseURL(base).
		SetHeader("Accept", "application/vnd.amadeus+json, application/json")

	return &Client{http: rc, maxResults: cfg.MaxResults}, nil
}

// Search implements model.FlightSearcher.
func (c *Client) Search(ctx context.Context, q model.SearchQuery) ([]model.FlightOffer, error) {
	params := map[string]string{
		"originLocationCode":      q.Origin,
		"destinationLocationCode": q.Destination,
		"departureDate":           q.DepartureDate.String(),
		"adults":                  strconv.Itoa(q.Adults),
	}
	if q.Currency != "" {
		params["currencyCode"] = q.Currency
	}
	if q.Airline != "" {
		params["includedAirlineCodes"] = q.Airline
	}
	if q.ReturnDate != nil {
		params["returnDate"] = q.ReturnDate.String()
	}
	if c.maxResults > 0 {
		params["max"] = strconv.Itoa(c.maxResults)
	}

	var out offersResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		SetError(&apiErr).
		Get(offersPath)
	if err != nil {
		logx.Error().Err(err).Str("origin", q.Origin).Str("destination", q.Destination).Msg("flight offers request failed")
		return nil, errx.WrapProvider(fmt.Errorf("flight offers request: %w", err))
	}
	if resp.IsError() {
		logx.Error().
			Int("status", resp.StatusCode()).
			Str("detail", apiErr.summary()).
			Msg("flight offers request rejected")
		return nil, errx.WrapProvider(fmt.Errorf("flight offers: status %d: %s", resp.StatusCode(), apiErr.summary()))
	}

	offers := make([]model.FlightOffer, 0, len(out.Data))
	for _, d := range out.Data {
		offers = append(offers, d.toModel())
	}
	logx.Debug().
		Str("origin", q.Origin).
		Str("destination", q.Destination).
		Str("departure_date", q.DepartureDate.String()).
		Int("offers", len(offers)).
		Msg("flight offers fetched")
	return offers, nil
}

var _ model.FlightSearcher = (*Client)(nil)

// ================ Wire types ================

type offersResponse struct {
	Data []offerData `json:"data"`
}

type offerData struct {
	ID          string `json:"id"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure   endpoint `json:"departure"`
			Arrival     endpoint `json:"arrival"`
			CarrierCode string   `json:"carrierCode"`
			Number      string   `json:"number"`
		} `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Currency string `json:"currency"`
		Total    string `json:"total"`
	} `json:"price"`
	TravelerPricings []struct {
		FareDetailsBySegment []struct {
			FareBasis string `json:"fareBasis"`
		} `json:"fareDetailsBySegment"`
	} `json:"travelerPricings"`
}

type endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

func (d offerData) toModel() model.FlightOffer {
	o := model.FlightOffer{
		ID:          d.ID,
		Price:       model.Price{Currency: d.Price.Currency, Total: d.Price.Total},
		Itineraries: make([]model.Itinerary, 0, len(d.Itineraries)),
	}
	for _, it := range d.Itineraries {
		mi := model.Itinerary{Duration: it.Duration, Segments: make([]model.Segment, 0, len(it.Segments))}
		for _, s := range it.Segments {
			mi.Segments = append(mi.Segments, model.Segment{
				DepartureIATA: s.Departure.IATACode,
				DepartureAt:   s.Departure.At,
				ArrivalIATA:   s.Arrival.IATACode,
				ArrivalAt:     s.Arrival.At,
				CarrierCode:   s.CarrierCode,
				Number:        s.Number,
			})
		}
		o.Itineraries = append(o.Itineraries, mi)
	}
	if len(d.TravelerPricings) > 0 && len(d.TravelerPricings[0].FareDetailsBySegment) > 0 {
		o.RawFareBasis = d.TravelerPricings[0].FareDetailsBySegment[0].FareBasis
	}
	return o
}

type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (e errorResponse) summary() string {
	if len(e.Errors) == 0 {
		return "no detail"
	}
	first := e.Errors[0]
	if first.Detail != "" {
		return first.Title + ": " + first.Detail
	}
	return first.Title
}
