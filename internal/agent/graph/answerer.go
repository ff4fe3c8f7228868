package graph

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/graph/observers"
	"github.com/Chative-fare-advisor/server/internal/agent/graph/prompts"
	"github.com/Chative-fare-advisor/server/internal/agent/model"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

const (
	NodeAnswerVars   = "answer_vars"
	NodeAnswerPrompt = "answer_prompt"
	NodeAnswerModel  = "answer_model"
	NodeAnswerText   = "answer_text"
)

// Answerer answers follow-up questions about the recommended bundle.
type Answerer struct {
	runnable compose.Runnable[model.AnswerInput, string]
}

func NewAnswerer(ctx context.Context, chatModel einomodel.BaseChatModel) (*Answerer, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("answer chat model is nil")
	}

	chain := compose.NewChain[model.AnswerInput, string]()
	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, in model.AnswerInput) (map[string]any, error) {
		return prompts.AnswerVars(in), nil
	}), compose.WithNodeKey(NodeAnswerVars))
	chain.AppendChatTemplate(prompts.AnswerTemplate(), compose.WithNodeKey(NodeAnswerPrompt))
	chain.AppendChatModel(chatModel, compose.WithNodeKey(NodeAnswerModel))
	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (string, error) {
		if msg == nil || strings.TrimSpace(msg.Content) == "" {
			return "", fmt.Errorf("empty answer")
		}
		return strings.TrimSpace(msg.Content), nil
	}), compose.WithNodeKey(NodeAnswerText))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling answer chain")
		return nil, fmt.Errorf("error compiling answer chain: %w", err)
	}
	return &Answerer{runnable: runnable}, nil
}

// Answer implements model.BundleAnswerer.
func (a *Answerer) Answer(ctx context.Context, in model.AnswerInput) (string, error) {
	return a.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

var _ model.BundleAnswerer = (*Answerer)(nil)
