package graph

import (
	"context"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

// Config holds everything needed to build the language oracle end-to-end.
type Config struct {
	APIKey    string
	BaseURL   string
	Extractor model.ExtractorModelConfig
	Answer    model.AnswerModelConfig
}

// Oracle bundles the two language model collaborators of the advisor.
type Oracle struct {
	Extractor *Extractor
	Answerer  *Answerer
}

// BuildOracle creates the Gemini chat models and compiles both chains.
func BuildOracle(ctx context.Context, cfg Config) (*Oracle, error) {
	cms, err := NewChatModels(ctx, ChatModelConfig{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Extractor: &cfg.Extractor,
		Answer:    &cfg.Answer,
	})
	if err != nil {
		return nil, err
	}

	extractor, err := NewExtractor(ctx, cms.Extractor)
	if err != nil {
		return nil, err
	}
	answerer, err := NewAnswerer(ctx, cms.Answer)
	if err != nil {
		return nil, err
	}

	logx.Debug().
		Str("extractor_model", cfg.Extractor.Model).
		Str("answer_model", cfg.Answer.Model).
		Msg("Language oracle built successfully")
	return &Oracle{Extractor: extractor, Answerer: answerer}, nil
}
