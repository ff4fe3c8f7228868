package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

// MemoryTranscriptRepository is the process-local transcript store used when
// no Redis URL is configured.
type MemoryTranscriptRepository struct {
	mu   sync.RWMutex
	msgs map[string][]*schema.Message
}

func NewMemoryTranscriptRepository() *MemoryTranscriptRepository {
	return &MemoryTranscriptRepository{msgs: make(map[string][]*schema.Message)}
}

func (r *MemoryTranscriptRepository) AddMessage(_ context.Context, conversationID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs[conversationID] = append(r.msgs[conversationID], message)
	return nil
}

func (r *MemoryTranscriptRepository) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.msgs[conversationID]
	msgs := make([]*schema.Message, len(src))
	copy(msgs, src)
	return &model.ConversationHistory{ConversationID: conversationID, Messages: msgs}, nil
}

func (r *MemoryTranscriptRepository) ClearHistory(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.msgs, conversationID)
	return nil
}

var _ model.TranscriptRepository = (*MemoryTranscriptRepository)(nil)
