package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

//go:embed template/slot_prompt.txt
var slotSystemPrompt string

// SlotTemplate is the extraction prompt: the system rules plus the raw user message.
func SlotTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(slotSystemPrompt),
		schema.UserMessage("{{.Message}}"),
	)
}

// SlotVars builds the template variables for one extraction call.
func SlotVars(in model.ExtractInput) (map[string]any, error) {
	state, err := json.MarshalIndent(in.Slots, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal slot state: %w", err)
	}
	topic := in.Topic
	if topic == "" {
		topic = model.TopicUnknown
	}
	return map[string]any{
		"Today":        model.DateOf(in.Today).String(),
		"Topic":        string(topic),
		"LastQuestion": lastAssistant(in.Recent),
		"State":        string(state),
		"Recent":       in.Recent,
		"Message":      in.Message,
	}, nil
}

func lastAssistant(turns []model.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == model.RoleAssistant {
			return turns[i].Content
		}
	}
	return ""
}
