package graph

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/graph/observers"
	"github.com/Chative-fare-advisor/server/internal/agent/graph/parsers"
	"github.com/Chative-fare-advisor/server/internal/agent/graph/prompts"
	"github.com/Chative-fare-advisor/server/internal/agent/model"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

const (
	NodeSlotVars   = "slot_vars"
	NodeSlotPrompt = "slot_prompt"
	NodeSlotModel  = "slot_model"
	NodeSlotParser = "slot_parser"
)

// Extractor turns a user message into a typed slot update via the language model.
type Extractor struct {
	runnable compose.Runnable[model.ExtractInput, *model.SlotUpdate]
}

// NewExtractor compiles the extraction chain: vars -> prompt -> model -> parser.
func NewExtractor(ctx context.Context, chatModel einomodel.BaseChatModel) (*Extractor, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("extractor chat model is nil")
	}

	chain := compose.NewChain[model.ExtractInput, *model.SlotUpdate]()
	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, in model.ExtractInput) (map[string]any, error) {
		return prompts.SlotVars(in)
	}), compose.WithNodeKey(NodeSlotVars))
	chain.AppendChatTemplate(prompts.SlotTemplate(), compose.WithNodeKey(NodeSlotPrompt))
	chain.AppendChatModel(chatModel, compose.WithNodeKey(NodeSlotModel))
	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (*model.SlotUpdate, error) {
		if msg == nil {
			return nil, fmt.Errorf("empty model message")
		}
		res, err := parsers.ParseSlotUpdate(msg.Content)
		if err != nil {
			return nil, err
		}
		return res.Update, nil
	}), compose.WithNodeKey(NodeSlotParser))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling extractor chain")
		return nil, fmt.Errorf("error compiling extractor chain: %w", err)
	}
	return &Extractor{runnable: runnable}, nil
}

// Extract implements model.SlotExtractor.
func (e *Extractor) Extract(ctx context.Context, in model.ExtractInput) (*model.SlotUpdate, error) {
	out, err := e.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return &model.SlotUpdate{}, nil
	}
	logx.Debug().
		Str("topic", string(in.Topic)).
		Str("input", in.Message).
		Interface("update", out).
		Msg("slot update extracted")
	return out, nil
}

var _ model.SlotExtractor = (*Extractor)(nil)
