package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// TranscriptRepository mirrors conversation turns outside the session.
type TranscriptRepository interface {
	// AddMessage appends a message to the transcript of the conversation
	AddMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadHistory retrieves the transcript of a conversation
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// ClearHistory removes the transcript of a conversation
	ClearHistory(ctx context.Context, conversationID string) error
}

// ConversationHistory represents a loaded transcript.
type ConversationHistory struct {
	ConversationID string
	Messages       []*schema.Message
}
