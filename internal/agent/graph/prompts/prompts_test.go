package prompts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	"github.com/cloudwego/eino/schema"
)

func TestSlotTemplateFormat(t *testing.T) {
	vars, err := SlotVars(model.ExtractInput{
		Today:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Topic:   model.TopicCarryOn,
		Slots:   model.SlotSet{Origin: model.Ptr("Calgary")},
		Message: "nope",
		Recent: []model.Turn{
			{Role: model.RoleUser, Content: "Calgary to Toronto"},
			{Role: model.RoleAssistant, Content: "Will you be bringing a carry-on bag?"},
		},
	})
	if err != nil {
		t.Fatalf("SlotVars: %v", err)
	}

	msgs, err := SlotTemplate().Format(context.Background(), vars)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	sys := msgs[0].Content
	for _, want := range []string{
		"Current Date: 2025-06-01",
		"Active Topic: carryOn",
		`(Based on: "Will you be bringing a carry-on bag?")`,
		`"origin": "Calgary"`,
		"user: Calgary to Toronto",
	} {
		if !strings.Contains(sys, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if msgs[1].Role != schema.User || msgs[1].Content != "nope" {
		t.Errorf("user message = %+v", msgs[1])
	}
}

func TestSlotVarsDefaultsTopic(t *testing.T) {
	vars, err := SlotVars(model.ExtractInput{Today: time.Now()})
	if err != nil {
		t.Fatalf("SlotVars: %v", err)
	}
	if vars["Topic"] != string(model.TopicUnknown) {
		t.Errorf("Topic = %v", vars["Topic"])
	}
}

func TestAnswerTemplateFormat(t *testing.T) {
	msgs, err := AnswerTemplate().Format(context.Background(), AnswerVars(model.AnswerInput{
		Question: "Can I get a refund?",
		Tier:     model.TierEconoFlex,
		Rules:    "Refunds: Fully refundable.",
	}))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(msgs) != 2 || !strings.Contains(msgs[0].Content, "about the EconoFlex bundle") {
		t.Fatalf("rendered = %+v", msgs)
	}
	if msgs[1].Role != schema.User || msgs[1].Content != "Can I get a refund?" {
		t.Errorf("user message = %+v", msgs[1])
	}
}
