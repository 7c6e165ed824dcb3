// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// capture records the last request seen by a capturing server.
type capture struct {
	path    string
	headers http.Header
	body    map[string]any
}

// newCapturingServer answers every request with body and records the request.
func newCapturingServer(t *testing.T, body []byte, c *capture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		c.headers = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &c.body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
}

func openAISuccessBody(text string) []byte {
	resp := openAIResponse{
		Choices: []openAIChoice{
			{Message: openAIMessage{Role: "assistant", Content: text}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func claudeSuccessBody(text string) []byte {
	resp := claudeResponse{
		Content: []claudeContentBlock{
			{Type: "text", Text: text},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func geminiSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func sampleRequest() ChatRequest {
	return ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a curriculum designer."},
			{Role: RoleUser, Content: "List topics."},
		},
		Temperature: ptr(0.7),
		MaxTokens:   2000,
	}
}

func ptr(f float64) *float64 { return &f }

// =====================================================================
// OpenAI / Mistral
// =====================================================================

func TestOpenAIChat_Success(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, openAISuccessBody("Hello from OpenAI"), &c)
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL})

	got, err := p.Chat(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello from OpenAI" {
		t.Errorf("got %q", got)
	}
	if c.path != "/chat/completions" {
		t.Errorf("path = %q", c.path)
	}
	if auth := c.headers.Get("Authorization"); auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if c.body["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v, want provider default", c.body["model"])
	}
	if c.body["max_tokens"] != float64(2000) {
		t.Errorf("max_tokens = %v", c.body["max_tokens"])
	}
	if msgs, _ := c.body["messages"].([]any); len(msgs) != 2 {
		t.Errorf("messages = %v, want system + user", c.body["messages"])
	}
}

func TestOpenAIChat_RequestModelOverridesDefault(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, openAISuccessBody("ok"), &c)
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL})
	req := sampleRequest()
	req.Model = "gpt-4.1"

	if _, err := p.Chat(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.body["model"] != "gpt-4.1" {
		t.Errorf("model = %v", c.body["model"])
	}
}

func TestOpenAIChat_EmptyContent(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, openAISuccessBody(""))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	got, err := p.Chat(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("empty content should not be an error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestOpenAIChat_NoChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"choices": []}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), sampleRequest())
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("err = %v, want no choices", err)
	}
}

func TestOpenAIChat_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		kind      error
		transient bool
	}{
		{http.StatusTooManyRequests, ErrRateLimit, true},
		{http.StatusInternalServerError, ErrAPI, true},
		{http.StatusBadGateway, ErrAPI, true},
		{http.StatusUnauthorized, nil, false},
		{http.StatusBadRequest, nil, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := newTestServer(t, tt.status, []byte(`{"error": "boom"}`))
			defer srv.Close()

			p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
			_, err := p.Chat(context.Background(), sampleRequest())
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
				t.Errorf("err = %v, want *APIError with status %d", err, tt.status)
			}
			if tt.kind != nil && !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.kind)
			}
			if got := IsTransient(err); got != tt.transient {
				t.Errorf("IsTransient = %v, want %v", got, tt.transient)
			}
		})
	}
}

func TestOpenAIChat_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{not json`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), sampleRequest())
	if err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Errorf("err = %v, want unmarshal error", err)
	}
}

func TestOpenAIChat_CancelledContext(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, openAISuccessBody("late"))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Chat(ctx, sampleRequest()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMistralChat_UsesOpenAIDialect(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, openAISuccessBody("Bonjour"), &c)
	defer srv.Close()

	p := newMistral(ProviderConfig{APIKey: "m-key", Model: "mistral-small-latest", BaseURL: srv.URL})
	if p.Name() != "mistral" {
		t.Errorf("Name() = %q", p.Name())
	}

	got, err := p.Chat(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("got %q", got)
	}
	if c.path != "/chat/completions" || c.headers.Get("Authorization") != "Bearer m-key" {
		t.Errorf("path=%q auth=%q", c.path, c.headers.Get("Authorization"))
	}
}

func TestMistralChat_ErrorNamesProvider(t *testing.T) {
	srv := newTestServer(t, http.StatusServiceUnavailable, []byte(`overloaded`))
	defer srv.Close()

	p := newMistral(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), sampleRequest())
	if err == nil || !strings.HasPrefix(err.Error(), "mistral API error") {
		t.Errorf("err = %v, want mistral API error", err)
	}
}

// =====================================================================
// Claude
// =====================================================================

func TestClaudeChat_Success(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, claudeSuccessBody("Hello from Claude"), &c)
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "c-key", Model: "claude-sonnet-4-5", BaseURL: srv.URL})
	got, err := p.Chat(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello from Claude" {
		t.Errorf("got %q", got)
	}
	if c.path != "/v1/messages" {
		t.Errorf("path = %q", c.path)
	}
	if c.headers.Get("x-api-key") != "c-key" || c.headers.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("headers = %v", c.headers)
	}
	if c.body["system"] != "You are a curriculum designer." {
		t.Errorf("system = %v", c.body["system"])
	}
	msgs, _ := c.body["messages"].([]any)
	if len(msgs) != 1 {
		t.Errorf("messages = %v, want only the user turn", msgs)
	}
}

func TestClaudeChat_DefaultMaxTokens(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, claudeSuccessBody("ok"), &c)
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	req := sampleRequest()
	req.MaxTokens = 0

	if _, err := p.Chat(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.body["max_tokens"] != float64(claudeDefaultMaxTokens) {
		t.Errorf("max_tokens = %v, want %d", c.body["max_tokens"], claudeDefaultMaxTokens)
	}
}

func TestClaudeChat_EmptyContent(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"content": []}`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	got, err := p.Chat(context.Background(), sampleRequest())
	if err != nil || got != "" {
		t.Errorf("got (%q, %v), want empty without error", got, err)
	}
}

func TestClaudeChat_RateLimited(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"type":"error"}`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), sampleRequest())
	if !errors.Is(err, ErrRateLimit) {
		t.Errorf("err = %v, want ErrRateLimit", err)
	}
}

// =====================================================================
// Gemini
// =====================================================================

func TestGeminiChat_Success(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, geminiSuccessBody("Hello from Gemini"), &c)
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "g-key", Model: "gemini-2.0-flash", BaseURL: srv.URL})
	req := sampleRequest()
	req.Messages = append(req.Messages,
		Message{Role: RoleAssistant, Content: "Mechanics"},
		Message{Role: RoleUser, Content: "More."},
	)

	got, err := p.Chat(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello from Gemini" {
		t.Errorf("got %q", got)
	}
	if c.path != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", c.path)
	}
	if c.headers.Get("x-goog-api-key") != "g-key" {
		t.Errorf("x-goog-api-key = %q", c.headers.Get("x-goog-api-key"))
	}
	if _, ok := c.body["systemInstruction"]; !ok {
		t.Error("system prompt not sent as systemInstruction")
	}

	contents, _ := c.body["contents"].([]any)
	if len(contents) != 3 {
		t.Fatalf("contents = %v, want 3 turns", contents)
	}
	if role := contents[1].(map[string]any)["role"]; role != "model" {
		t.Errorf("assistant turn role = %v, want model", role)
	}

	cfg, _ := c.body["generationConfig"].(map[string]any)
	if cfg["maxOutputTokens"] != float64(2000) {
		t.Errorf("generationConfig = %v", cfg)
	}
}

func TestGeminiChat_NoCandidates(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"candidates": []}`))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), sampleRequest())
	if err == nil || !strings.Contains(err.Error(), "no candidates") {
		t.Errorf("err = %v, want no candidates", err)
	}
}

func TestGeminiChat_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, []byte(`oops`))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Chat(context.Background(), sampleRequest())
	if !errors.Is(err, ErrAPI) {
		t.Errorf("err = %v, want ErrAPI", err)
	}
}

// =====================================================================
// Sampling temperature
// =====================================================================

func TestChat_ZeroTemperatureIsSent(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		new  func(ProviderConfig) Client
		temp func(map[string]any) (any, bool)
	}{
		{"openai", openAISuccessBody("ok"), func(c ProviderConfig) Client { return newOpenAI(c) },
			func(b map[string]any) (any, bool) { v, ok := b["temperature"]; return v, ok }},
		{"claude", claudeSuccessBody("ok"), func(c ProviderConfig) Client { return newClaude(c) },
			func(b map[string]any) (any, bool) { v, ok := b["temperature"]; return v, ok }},
		{"gemini", geminiSuccessBody("ok"), func(c ProviderConfig) Client { return newGemini(c) },
			func(b map[string]any) (any, bool) {
				cfg, _ := b["generationConfig"].(map[string]any)
				v, ok := cfg["temperature"]
				return v, ok
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c capture
			srv := newCapturingServer(t, tt.body, &c)
			defer srv.Close()

			req := sampleRequest()
			req.Temperature = ptr(0)
			req.MaxTokens = 0

			p := tt.new(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if _, err := p.Chat(context.Background(), req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := tt.temp(c.body)
			if !ok || got != float64(0) {
				t.Errorf("temperature = %v (present %v), want explicit 0", got, ok)
			}
		})
	}
}

func TestOpenAIChat_NilTemperatureOmitted(t *testing.T) {
	var c capture
	srv := newCapturingServer(t, openAISuccessBody("ok"), &c)
	defer srv.Close()

	req := sampleRequest()
	req.Temperature = nil

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	if _, err := p.Chat(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := c.body["temperature"]; ok {
		t.Errorf("temperature = %v, want provider default", v)
	}
}
