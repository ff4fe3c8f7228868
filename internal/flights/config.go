package flights

import "time"

// Config holds the Amadeus Self-Service credentials and search limits.
type Config struct {
	ClientID     string        `envconfig:"AMADEUS_CLIENT_ID" required:"true"`
	ClientSecret string        `envconfig:"AMADEUS_CLIENT_SECRET" required:"true"`
	BaseURL      string        `envconfig:"AMADEUS_BASE_URL" default:"https://test.api.amadeus.com"`
	MaxResults   int           `envconfig:"AMADEUS_MAX_RESULTS" default:"50"`
	Timeout      time.Duration `envconfig:"AMADEUS_TIMEOUT" default:"15s"`
}
