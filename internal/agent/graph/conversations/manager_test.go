package conversations

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
)

type fakeTranscripts struct {
	msgs    map[string][]*schema.Message
	failAdd bool
}

func newFakeTranscripts() *fakeTranscripts {
	return &fakeTranscripts{msgs: map[string][]*schema.Message{}}
}

func (f *fakeTranscripts) AddMessage(_ context.Context, id string, m *schema.Message) error {
	if f.failAdd {
		return errors.New("down")
	}
	f.msgs[id] = append(f.msgs[id], m)
	return nil
}

func (f *fakeTranscripts) LoadHistory(_ context.Context, id string) (*model.ConversationHistory, error) {
	return &model.ConversationHistory{ConversationID: id, Messages: f.msgs[id]}, nil
}

func (f *fakeTranscripts) ClearHistory(_ context.Context, id string) error {
	delete(f.msgs, id)
	return nil
}

func newManager(repo model.TranscriptRepository, maxTurns int) *MessagesManager {
	var cfg model.SessionConfig
	cfg.Oracle.MaxTurns = maxTurns
	return NewMessagesManager(repo, cfg)
}

func TestRecordAndForget(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTranscripts()
	m := newManager(repo, 4)

	m.RecordUser(ctx, "c1", "hello")
	m.RecordAssistant(ctx, "c1", "Where are you flying from?")

	turns, err := m.Transcript(ctx, "c1")
	if err != nil || len(turns) != 2 {
		t.Fatalf("Transcript = %+v, %v; want 2 turns", turns, err)
	}
	if turns[0] != (model.Turn{Role: model.RoleUser, Content: "hello"}) ||
		turns[1] != (model.Turn{Role: model.RoleAssistant, Content: "Where are you flying from?"}) {
		t.Errorf("turns = %+v", turns)
	}

	if err := m.Forget(ctx, "c1"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if turns, _ := m.Transcript(ctx, "c1"); len(turns) != 0 {
		t.Errorf("Transcript after Forget = %+v", turns)
	}
}

func TestOnEvictForgetsTranscript(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTranscripts()
	m := newManager(repo, 4)
	m.RecordUser(ctx, "c1", "hello")
	m.RecordUser(ctx, "c2", "hi")

	m.OnEvict()("c1")

	if _, ok := repo.msgs["c1"]; ok {
		t.Error("evicted conversation transcript should be cleared")
	}
	if len(repo.msgs["c2"]) != 1 {
		t.Error("other conversations must be untouched")
	}
}

func TestTranscriptSkipsOtherRoles(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTranscripts()
	repo.msgs["c1"] = []*schema.Message{
		schema.SystemMessage("rules"),
		schema.UserMessage("hi"),
		nil,
	}
	turns, err := newManager(repo, 4).Transcript(ctx, "c1")
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "hi" {
		t.Errorf("turns = %+v", turns)
	}
}

func TestRecordFailureIsSwallowed(t *testing.T) {
	repo := newFakeTranscripts()
	repo.failAdd = true
	m := newManager(repo, 4)
	// must not panic or surface the error
	m.RecordUser(context.Background(), "c1", "hello")
}

func TestNilRepository(t *testing.T) {
	ctx := context.Background()
	m := newManager(nil, 4)
	m.RecordUser(ctx, "c1", "hello")
	if turns, err := m.Transcript(ctx, "c1"); len(turns) != 0 || err != nil {
		t.Errorf("Transcript = %+v, %v", turns, err)
	}
	if err := m.Forget(ctx, "c1"); err != nil {
		t.Errorf("Forget: %v", err)
	}
}

func TestOracleContext(t *testing.T) {
	history := []model.Turn{
		{Role: model.RoleUser, Content: "a"},
		{Role: model.RoleAssistant, Content: "b"},
		{Role: model.RoleUser, Content: "c"},
	}
	tests := []struct {
		name     string
		maxTurns int
		want     []string
	}{
		{name: "window smaller than history", maxTurns: 2, want: []string{"b", "c"}},
		{name: "window larger than history", maxTurns: 6, want: []string{"a", "b", "c"}},
		{name: "disabled", maxTurns: 0, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := newManager(nil, tc.maxTurns).OracleContext(history)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i].Content != tc.want[i] {
					t.Errorf("turn %d = %q, want %q", i, got[i].Content, tc.want[i])
				}
			}
		})
	}

	got := newManager(nil, 6).OracleContext(history)
	got[0].Content = "mutated"
	if history[0].Content != "a" {
		t.Error("OracleContext must copy the history")
	}
}
