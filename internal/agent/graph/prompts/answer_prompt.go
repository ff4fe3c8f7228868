package prompts

import (
	_ "embed"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

//go:embed template/answer_prompt.txt
var answerSystemPrompt string

// AnswerTemplate renders the follow-up question prompt for a bundle.
func AnswerTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(answerSystemPrompt),
		schema.UserMessage("{{.Question}}"),
	)
}

func AnswerVars(in model.AnswerInput) map[string]any {
	return map[string]any{
		"Question": in.Question,
		"Bundle":   string(in.Tier),
		"Rules":    in.Rules,
	}
}
