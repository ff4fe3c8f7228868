package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	errx "github.com/Chative-fare-advisor/server/internal/core/error"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	reply    *model.Reply
	err      error
	panicMsg string
	got      []model.ChatRequest
	closed   map[string]bool
	turns    map[string][]model.Turn
	sessions int
}

func (f *fakeService) Handle(_ context.Context, req model.ChatRequest) (*model.Reply, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.got = append(f.got, req)
	return f.reply, f.err
}

func (f *fakeService) Transcript(_ context.Context, id string) ([]model.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	turns, ok := f.turns[id]
	if !ok {
		return []model.Turn{}, nil
	}
	return turns, nil
}

func (f *fakeService) Close(id string) bool { return f.closed[id] }

func (f *fakeService) Sessions() int { return f.sessions }

func do(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) model.Reply {
	t.Helper()
	var out model.Reply
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeService
		wantStatus int
		wantReply  string
	}{
		{
			name:       "ok",
			body:       `{"conversationId":"c1","message":"hi"}`,
			svc:        &fakeService{reply: &model.Reply{Reply: "Where are you flying from?"}},
			wantStatus: http.StatusOK,
			wantReply:  "Where are you flying from?",
		},
		{
			name:       "malformed json",
			body:       `{"conversationId":`,
			svc:        &fakeService{},
			wantStatus: http.StatusBadRequest,
			wantReply:  errx.MissingDataMessage,
		},
		{
			name:       "missing data",
			body:       `{"conversationId":"c1"}`,
			svc:        &fakeService{err: errx.BadRequest(errx.ErrMissingData, errx.MissingDataMessage)},
			wantStatus: http.StatusBadRequest,
			wantReply:  errx.MissingDataMessage,
		},
		{
			name:       "unexpected failure",
			body:       `{"conversationId":"c1","message":"hi"}`,
			svc:        &fakeService{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantReply:  errx.SystemErrorMessage,
		},
		{
			name:       "upstream failure hides detail",
			body:       `{"conversationId":"c1","message":"hi"}`,
			svc:        &fakeService{err: errx.WrapOracle(errors.New("quota"))},
			wantStatus: http.StatusBadGateway,
			wantReply:  errx.SystemErrorMessage,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, NewRouter(tc.svc), http.MethodPost, "/api/chat", tc.body, nil)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if got := decodeReply(t, w); got.Reply != tc.wantReply {
				t.Errorf("reply = %q, want %q", got.Reply, tc.wantReply)
			}
		})
	}
}

func TestChatPanicReturnsGenericReply(t *testing.T) {
	w := do(t, NewRouter(&fakeService{panicMsg: "nil session"}), http.MethodPost, "/api/chat", `{"conversationId":"c1","message":"hi"}`, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := decodeReply(t, w); got.Reply != errx.SystemErrorMessage {
		t.Errorf("reply = %q, want %q", got.Reply, errx.SystemErrorMessage)
	}
}

func TestTranscript(t *testing.T) {
	svc := &fakeService{turns: map[string][]model.Turn{
		"c1": {
			{Role: model.RoleUser, Content: "hello"},
			{Role: model.RoleAssistant, Content: "Where are you flying from?"},
		},
	}}
	w := do(t, NewRouter(svc), http.MethodGet, "/api/chat/c1/transcript", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		ConversationID string       `json:"conversationId"`
		Messages       []model.Turn `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.ConversationID != "c1" || len(out.Messages) != 2 || out.Messages[1].Role != model.RoleAssistant {
		t.Errorf("transcript = %+v", out)
	}

	svc.err = errx.WrapRedis(errors.New("connection refused"))
	w = do(t, NewRouter(svc), http.MethodGet, "/api/chat/c1/transcript", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("redis failure status = %d, want 502", w.Code)
	}
}

func TestChatPassesRequestThrough(t *testing.T) {
	svc := &fakeService{reply: &model.Reply{
		Reply: "I recommend the Econo bundle.",
		Recommendation: &model.RecommendationPayload{
			Title: model.TierEcono,
			Price: "CAD 300.00",
		},
	}}
	w := do(t, NewRouter(svc), http.MethodPost, "/api/chat", `{"conversationId":"abc","message":"no points"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(svc.got) != 1 || svc.got[0].ConversationID != "abc" || svc.got[0].Message != "no points" {
		t.Errorf("service got %+v", svc.got)
	}
	out := decodeReply(t, w)
	if out.Recommendation == nil || out.Recommendation.Title != model.TierEcono || out.Recommendation.Price != "CAD 300.00" {
		t.Errorf("recommendation = %+v", out.Recommendation)
	}
}

func TestReplyOmitsEmptyRecommendation(t *testing.T) {
	svc := &fakeService{reply: &model.Reply{Reply: "hi"}}
	w := do(t, NewRouter(svc), http.MethodPost, "/api/chat", `{"conversationId":"c","message":"m"}`, nil)
	if strings.Contains(w.Body.String(), "recommendation") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCloseConversation(t *testing.T) {
	svc := &fakeService{closed: map[string]bool{"c1": true}}
	r := NewRouter(svc)

	if w := do(t, r, http.MethodDelete, "/api/chat/c1", "", nil); w.Code != http.StatusNoContent {
		t.Errorf("existing: status = %d, want 204", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/chat/nope", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing: status = %d, want 404", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := do(t, NewRouter(&fakeService{sessions: 3}), http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "ok" || out.Sessions != 3 {
		t.Errorf("health = %+v", out)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := NewRouter(&fakeService{})

	w := do(t, r, http.MethodGet, "/healthz", "", map[string]string{RequestIDHeader: "req-1"})
	if got := w.Header().Get(RequestIDHeader); got != "req-1" {
		t.Errorf("echoed request id = %q", got)
	}
	w = do(t, r, http.MethodGet, "/healthz", "", nil)
	if got := w.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("generated request id = %q", got)
	}
}

func TestCORSReflectsOrigin(t *testing.T) {
	r := NewRouter(&fakeService{})
	w := do(t, r, http.MethodOptions, "/api/chat", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": "POST",
	})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}
}
