package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

// MessagesManager mirrors session turns into a transcript repository and
// builds the short history window handed to the language oracle.
type MessagesManager struct {
	transcripts    model.TranscriptRepository
	oracleMaxTurns int
}

func NewMessagesManager(transcripts model.TranscriptRepository, config model.SessionConfig) *MessagesManager {
	return &MessagesManager{
		transcripts:    transcripts,
		oracleMaxTurns: config.Oracle.MaxTurns,
	}
}

// =========== Transcript mirroring ===========

// RecordUser mirrors a user turn. Mirror failures never fail the request.
func (cm *MessagesManager) RecordUser(ctx context.Context, conversationID, content string) {
	cm.record(ctx, conversationID, schema.UserMessage(content))
}

// RecordAssistant mirrors an assistant turn.
func (cm *MessagesManager) RecordAssistant(ctx context.Context, conversationID, content string) {
	cm.record(ctx, conversationID, schema.AssistantMessage(content, nil))
}

func (cm *MessagesManager) record(ctx context.Context, conversationID string, msg *schema.Message) {
	if cm.transcripts == nil {
		return
	}
	if err := cm.transcripts.AddMessage(ctx, conversationID, msg); err != nil {
		logx.Warn().Err(err).
			Str("conversation_id", conversationID).
			Str("role", string(msg.Role)).
			Msg("failed to mirror transcript message")
	}
}

// Forget drops the mirrored transcript of a conversation.
func (cm *MessagesManager) Forget(ctx context.Context, conversationID string) error {
	if cm.transcripts == nil {
		return nil
	}
	return cm.transcripts.ClearHistory(ctx, conversationID)
}

// OnEvict returns a session-store evict hook that forgets the transcript.
func (cm *MessagesManager) OnEvict() func(conversationID string) {
	return func(conversationID string) {
		if err := cm.Forget(context.Background(), conversationID); err != nil {
			logx.Warn().Err(err).
				Str("conversation_id", conversationID).
				Msg("failed to clear transcript of evicted session")
		}
	}
}

// Transcript returns the mirrored user and assistant turns of a conversation.
func (cm *MessagesManager) Transcript(ctx context.Context, conversationID string) ([]model.Turn, error) {
	if cm.transcripts == nil {
		return []model.Turn{}, nil
	}
	history, err := cm.transcripts.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	turns := make([]model.Turn, 0, len(history.Messages))
	for _, msg := range history.Messages {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.User:
			turns = append(turns, model.Turn{Role: model.RoleUser, Content: msg.Content})
		case schema.Assistant:
			turns = append(turns, model.Turn{Role: model.RoleAssistant, Content: msg.Content})
		}
	}
	return turns, nil
}

// =========== Oracle context ===========

// OracleContext returns the last turns of the session history that fit the
// oracle window.
func (cm *MessagesManager) OracleContext(history []model.Turn) []model.Turn {
	return trimTail(history, cm.oracleMaxTurns)
}

// ====================== Helper function ======================
func trimTail(turns []model.Turn, maxTurns int) []model.Turn {
	if maxTurns <= 0 {
		return []model.Turn{}
	}
	if len(turns) <= maxTurns {
		result := make([]model.Turn, len(turns))
		copy(result, turns)
		return result
	}
	source := turns[len(turns)-maxTurns:]
	result := make([]model.Turn, len(source))
	copy(result, source)
	return result
}
