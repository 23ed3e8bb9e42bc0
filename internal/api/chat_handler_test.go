package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hcp-crm/internal/agent"
	"hcp-crm/internal/session"
	"hcp-crm/internal/tools"
)

type fakeCompletions struct {
	out string
	err error
}

func (f *fakeCompletions) Complete(ctx context.Context, messages []map[string]string) (string, error) {
	return f.out, f.err
}

func newChatTestRouter(t *testing.T, completions agent.CompletionService) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		tools.NewHCPProfileTool(),
		tools.NewNextActionTool(),
		tools.NewProductInfoTool(),
	} {
		if err := registry.Register(tool); err != nil {
			t.Fatalf("register tool: %v", err)
		}
	}
	agentRouter := agent.NewRouter(agent.NewParser(completions), registry)
	sessions := session.NewManager(nil)

	r := gin.New()
	r.POST("/interactions/log_chat_message", ChatMessageHandler(sessions, agentRouter))
	return r, sessions
}

func postChat(t *testing.T, r *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/interactions/log_chat_message", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChatMessageHandler_MissingMessage(t *testing.T) {
	r, _ := newChatTestRouter(t, &fakeCompletions{out: "{}"})
	w := postChat(t, r, map[string]string{"session_id": "s1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChatMessageHandler_ExtractTurn(t *testing.T) {
	completions := &fakeCompletions{out: `{"conversational_reply": "Logged.", "action_details": {"type": "EXTRACT_INFO", "extracted_fields": {"hcpName": "Dr. Lee"}}}`}
	r, _ := newChatTestRouter(t, completions)

	w := postChat(t, r, map[string]string{"user_message": "met Dr. Lee"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp ChatMessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AIResponse != "Logged." {
		t.Errorf("unexpected ai_response: %q", resp.AIResponse)
	}
	if resp.FinalActionType != "EXTRACT_INFO" {
		t.Errorf("unexpected final_action_type: %q", resp.FinalActionType)
	}
	if resp.ExtractedData["hcpName"] != "Dr. Lee" {
		t.Errorf("extracted_data missing merge: %+v", resp.ExtractedData)
	}
	if resp.IsComplete {
		t.Errorf("is_complete must stay false until an explicit save")
	}
	if !strings.HasPrefix(resp.SessionID, "session_") {
		t.Errorf("expected generated session id, got %q", resp.SessionID)
	}
}

func TestChatMessageHandler_RecordAccumulatesAcrossTurns(t *testing.T) {
	completions := &fakeCompletions{out: `{"conversational_reply": "Logged.", "action_details": {"type": "EXTRACT_INFO", "extracted_fields": {"hcpName": "Dr. Lee"}}}`}
	r, _ := newChatTestRouter(t, completions)

	w := postChat(t, r, map[string]string{"user_message": "met Dr. Lee", "session_id": "s1"})
	if w.Code != http.StatusOK {
		t.Fatalf("turn 1: %d", w.Code)
	}

	completions.out = `{"conversational_reply": "Noted.", "action_details": {"type": "EXTRACT_INFO", "extracted_fields": {"sentiment": "Positive"}}}`
	w = postChat(t, r, map[string]string{"user_message": "she was positive", "session_id": "s1"})
	if w.Code != http.StatusOK {
		t.Fatalf("turn 2: %d", w.Code)
	}
	var resp ChatMessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ExtractedData["hcpName"] != "Dr. Lee" || resp.ExtractedData["sentiment"] != "Positive" {
		t.Errorf("record did not accumulate: %+v", resp.ExtractedData)
	}
}

func TestChatMessageHandler_MalformedModelOutput(t *testing.T) {
	completions := &fakeCompletions{out: "not json at all"}
	r, _ := newChatTestRouter(t, completions)

	w := postChat(t, r, map[string]string{"user_message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("malformed model output must not fail the request, got %d", w.Code)
	}
	var resp ChatMessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.FinalActionType != "ERROR" {
		t.Errorf("expected ERROR action type, got %q", resp.FinalActionType)
	}
	if resp.AIResponse != "not json at all" {
		t.Errorf("raw model text should survive, got %q", resp.AIResponse)
	}
}

func TestChatMessageHandler_BusySessionConflict(t *testing.T) {
	r, sessions := newChatTestRouter(t, &fakeCompletions{out: "{}"})

	sess := sessions.GetOrCreate("busy")
	if err := sess.BeginTurn(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer sess.EndTurn()

	w := postChat(t, r, map[string]string{"user_message": "hello", "session_id": "busy"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for overlapping turn, got %d", w.Code)
	}
}
