package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiProvider_Chat(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"hi there"}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "k", srv.URL, ProviderOptions{Temperature: 0.7})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	text, err := p.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if text != "hi there" {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.Contains(path, GeminiModel) {
		t.Fatalf("model missing from request path %q", path)
	}
}

func TestGeminiProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), " ", "", ProviderOptions{}); err == nil {
		t.Fatalf("expected api key error")
	}
}

func TestGeminiProvider_RequestSplitsSystem(t *testing.T) {
	p := &GeminiProvider{model: GeminiModel, temperature: 0.5}
	contents, cfg := p.request([]Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "rules" {
		t.Fatalf("system instruction not set")
	}
	if len(contents) != 2 || contents[0].Role != "user" || contents[1].Role != "model" {
		t.Fatalf("unexpected contents roles")
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.5 {
		t.Fatalf("temperature not forwarded")
	}
}
