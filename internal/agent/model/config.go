package model

// ================ Config ================
type SessionConfig struct {
	TTL           string `envconfig:"SESSION_TTL" default:"2h"`
	SweepInterval string `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`
	TranscriptTTL string `envconfig:"TRANSCRIPT_TTL" default:"24h"`
	Oracle        struct {
		MaxTurns int `envconfig:"ORACLE_MAX_TURNS" default:"6"`
	}
}

type ExtractorModelConfig struct {
	Model       string  `envconfig:"EXTRACTOR_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"EXTRACTOR_MAX_TOKENS" default:"1000"`
	Temperature float32 `envconfig:"EXTRACTOR_TEMPERATURE" default:"0"`
}

type AnswerModelConfig struct {
	Model       string  `envconfig:"ANSWER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ANSWER_MAX_TOKENS" default:"800"`
	Temperature float32 `envconfig:"ANSWER_TEMPERATURE" default:"0.3"`
}

type SearchConfig struct {
	Currency string `envconfig:"AMADEUS_CURRENCY" default:"CAD"`
	Airline  string `envconfig:"AMADEUS_AIRLINE" default:"WS"`
}
