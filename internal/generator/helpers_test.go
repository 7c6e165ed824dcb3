// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"topictree/internal/ai"
	"topictree/internal/retry"
)

// scriptedClient is a fake ai.Client. Each call is routed to respond with
// the call's 1-based index and the user prompt.
type scriptedClient struct {
	mu      sync.Mutex
	calls   []ai.ChatRequest
	respond func(n int, user string) (string, error)
}

func (s *scriptedClient) Chat(_ context.Context, req ai.ChatRequest) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	n := len(s.calls)
	s.mu.Unlock()
	return s.respond(n, userPrompt(req))
}

func (s *scriptedClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func userPrompt(req ai.ChatRequest) string {
	for _, m := range req.Messages {
		if m.Role == ai.RoleUser {
			return m.Content
		}
	}
	return ""
}

// level classifies a structured prompt.
func level(user string) string {
	switch {
	case strings.Contains(user, "main topics for the subject"):
		return "main"
	case strings.Contains(user, "subtopics for the main topic"):
		return "sub"
	case strings.Contains(user, "curriculum topics for the subtopic"):
		return "leaf"
	}
	return "outline"
}

// items renders a JSON array of n nodes titled "<prefix> 1".."<prefix> n".
func items(prefix string, n int) string {
	type item struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Keywords    []string `json:"keywords"`
	}
	list := make([]item, n)
	for i := range list {
		list[i] = item{
			Title:       fmt.Sprintf("%s %d", prefix, i+1),
			Description: fmt.Sprintf("About %s %d", prefix, i+1),
			Keywords:    []string{prefix},
		}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func titled(titles ...string) string {
	list := make([]map[string]string, len(titles))
	for i, t := range titles {
		list[i] = map[string]string{"title": t, "description": "d"}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// uniformModel answers every level with exactly the requested shape.
func uniformModel(main, sub, leaf int) *scriptedClient {
	return &scriptedClient{respond: func(_ int, user string) (string, error) {
		switch level(user) {
		case "main":
			return items("Main", main), nil
		case "sub":
			return items("Sub", sub), nil
		default:
			return items("Leaf", leaf), nil
		}
	}}
}

var fixedNow = time.Date(2026, 5, 4, 12, 30, 15, 987654321, time.FixedZone("CEST", 2*3600))

// newTestGenerator uses a millisecond retry policy and a fixed clock.
func newTestGenerator(c ai.Client) *Generator {
	return New(c,
		WithRetryPolicy(retry.Policy{
			MaxAttempts: 5,
			BaseDelay:   time.Millisecond,
			MaxDelay:    time.Millisecond,
			Retryable:   ai.IsTransient,
		}),
		WithClock(func() time.Time { return fixedNow }),
	)
}

// progressLog records progress callbacks.
type progressLog struct {
	values   []float64
	messages []string
}

func (p *progressLog) record(f float64, msg string) {
	p.values = append(p.values, f)
	p.messages = append(p.messages, msg)
}

func baseRequest(mode Mode) Request {
	return Request{
		Topic:              "Physik in Anlehnung an die Lehrpläne der Sekundarstufe 2",
		NumMain:            3,
		NumSub:             2,
		NumLeaf:            2,
		Discipline:         "Physik",
		EducationalContext: "Sekundarstufe II",
		EducationSector:    "Allgemeinbildend",
		Model:              "gpt-4o-mini",
		Mode:               mode,
	}
}
