package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chatService "chefmate-server/internal/core/chat"
	"chefmate-server/internal/core/conversation"
	"chefmate-server/internal/core/recipe"
	"chefmate-server/internal/infrastructure/config"
	"chefmate-server/internal/infrastructure/store"
	"chefmate-server/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

type stubGenerator struct {
	result string
	err    error
}

func (g *stubGenerator) ProcessRequest(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.result, nil
}

func newRouter(gen recipe.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		OpenAI: config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-3.5-turbo"},
	}
	history := chatService.NewService(store.NewMemoryStore())
	orch := conversation.NewOrchestrator(history, recipe.NewService(cfg, gen))
	h := NewHandler(history, orch)

	r := gin.New()
	r.POST("/chat", h.HandleSaveMessage)
	r.GET("/chat/:userId", h.HandleGetHistory)
	r.POST("/chat/ask", h.HandleAsk)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSaveMessageAndGetHistory(t *testing.T) {
	r := newRouter(&stubGenerator{result: "ok"})

	w := postJSON(r, "/chat", `{"userId":"u1","message":"hello","type":"user"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save status %d: %s", w.Code, w.Body.String())
	}
	var saveResp struct {
		Success   bool  `json:"success"`
		MessageID int64 `json:"messageId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &saveResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !saveResp.Success || saveResp.MessageID == 0 {
		t.Fatalf("unexpected save response: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/u1", nil)
	r.ServeHTTP(w, req)

	var histResp struct {
		Messages []chatService.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &histResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(histResp.Messages) != 1 || histResp.Messages[0].Text != "hello" {
		t.Fatalf("unexpected history: %s", w.Body.String())
	}
}

func TestSaveMessageMissingFields(t *testing.T) {
	r := newRouter(&stubGenerator{result: "ok"})

	for _, body := range []string{
		`{"message":"hello","type":"user"}`,
		`{"userId":"u1","type":"user"}`,
		`{"userId":"u1","message":"hello"}`,
	} {
		w := postJSON(r, "/chat", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestGetHistoryEmpty(t *testing.T) {
	r := newRouter(&stubGenerator{result: "ok"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/nobody", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	// 沒有記錄時必須是空陣列而不是 null
	if !strings.Contains(w.Body.String(), `"messages":[]`) {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestAskReturnsAssistantMessage(t *testing.T) {
	r := newRouter(&stubGenerator{result: "Fried Rice\n1. ..."})

	w := postJSON(r, "/chat/ask", `{"userId":"u1","ingredients":["chicken","rice","Chicken"],"profile":{"skillLevel":"beginner"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("ask status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message chatService.Message `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message.Role != chatService.RoleAssistant {
		t.Fatalf("expected assistant message, got %+v", resp.Message)
	}
	if resp.Message.Recipe == "" {
		t.Fatalf("expected recipe payload, got %+v", resp.Message)
	}

	// 重複食材在協調器前被去重：使用者消息只列出兩項
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/u1", nil)
	r.ServeHTTP(w, req)
	var histResp struct {
		Messages []chatService.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &histResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(histResp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(histResp.Messages))
	}
	if histResp.Messages[0].Text != "I have these ingredients: chicken, rice. Can you create a recipe for me?" {
		t.Fatalf("unexpected user text: %q", histResp.Messages[0].Text)
	}
}

func TestAskDegradedDelivery(t *testing.T) {
	r := newRouter(&stubGenerator{err: common.NewGenerationError("upstream down", nil)})

	w := postJSON(r, "/chat/ask", `{"userId":"u1","ingredients":["chicken"],"profile":{}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("degraded turn must be 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Sorry, I couldn't generate a recipe right now") {
		t.Fatalf("expected canned apology, got %s", w.Body.String())
	}
}

func TestAskMissingIngredients(t *testing.T) {
	r := newRouter(&stubGenerator{result: "ok"})

	w := postJSON(r, "/chat/ask", `{"userId":"u1","ingredients":[],"profile":{}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
