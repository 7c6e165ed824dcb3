// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator builds topic trees by querying a language model. Two
// strategies exist: single-pass asks for the whole tree as an indented
// outline, iterative builds it level by level from structured JSON replies.
// Every model call runs under a retry policy; every finished tree gets its
// classification stamped onto all nodes.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"topictree/internal/ai"
	"topictree/internal/models"
	"topictree/internal/retry"
	"topictree/internal/taxonomy"
)

// Generation modes.
type Mode string

const (
	ModeSingle    Mode = "single"
	ModeIterative Mode = "iterative"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeIterative:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
}

var (
	// ErrInvalidRequest is returned when a request fails validation.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrNoMainTopics means the model produced no usable main topic.
	ErrNoMainTopics = errors.New("model produced no main topics")

	// ErrGenerationFailed wraps every failed build. A failed build never
	// returns a tree.
	ErrGenerationFailed = errors.New("topic tree generation failed")
)

// Default generation parameters.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)

// ProgressFunc receives a fraction in [0,1] and a status message. It is
// called synchronously on the building goroutine and must not block.
type ProgressFunc func(fraction float64, message string)

// Request describes one build.
type Request struct {
	Topic              string `json:"topic"`
	NumMain            int    `json:"num_main"`
	NumSub             int    `json:"num_sub"`
	NumLeaf            int    `json:"num_leaf"`
	IncludeGeneral     bool   `json:"include_general"`
	IncludeMethodology bool   `json:"include_methodology"`

	// Classification choices by display name, drawn from the taxonomy tables.
	// Empty means no selection.
	Discipline         string `json:"discipline"`
	EducationalContext string `json:"educational_context"`
	EducationSector    string `json:"education_sector"`

	Model string `json:"model"`
	Mode  Mode   `json:"mode"`
}

// Validate checks the request. Counts must be positive; there is no upper
// bound.
func (r Request) Validate() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if r.NumMain < 1 || r.NumSub < 1 || r.NumLeaf < 1 {
		return fmt.Errorf("%w: topic counts must be at least 1 (main=%d sub=%d leaf=%d)",
			ErrInvalidRequest, r.NumMain, r.NumSub, r.NumLeaf)
	}
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return err
	}
	if r.Discipline != "" && !taxonomy.Disciplines.Contains(r.Discipline) {
		return fmt.Errorf("%w: unknown discipline %q", ErrInvalidRequest, r.Discipline)
	}
	if r.EducationalContext != "" && !taxonomy.EducationalContexts.Contains(r.EducationalContext) {
		return fmt.Errorf("%w: unknown educational context %q", ErrInvalidRequest, r.EducationalContext)
	}
	if r.EducationSector != "" && !taxonomy.EducationSectors.Contains(r.EducationSector) {
		return fmt.Errorf("%w: unknown education sector %q", ErrInvalidRequest, r.EducationSector)
	}
	return nil
}

// Generator runs topic tree builds against a language model client.
type Generator struct {
	client      ai.Client
	policy      retry.Policy
	now         func() time.Time
	temperature float64
	maxTokens   int
	defaultMode Mode
}

// Option configures a Generator.
type Option func(*Generator)

// WithRetryPolicy replaces the retry policy applied to every model call.
func WithRetryPolicy(p retry.Policy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithClock sets the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// WithMaxTokens sets the completion limit for structured calls.
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// WithDefaultMode sets the mode used when a request leaves Mode empty.
func WithDefaultMode(m Mode) Option {
	return func(g *Generator) { g.defaultMode = m }
}

// New creates a Generator. Without options it retries transient model
// failures 5 times and builds iteratively.
func New(client ai.Client, opts ...Option) *Generator {
	g := &Generator{
		client:      client,
		policy:      retry.DefaultPolicy(ai.IsTransient),
		now:         time.Now,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
		defaultMode: ModeIterative,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs one build. On failure the error wraps ErrGenerationFailed
// (and the underlying cause) and the tree is nil. progress may be nil.
func (g *Generator) Generate(ctx context.Context, req Request, progress ProgressFunc) (tree *models.TopicTree, err error) {
	if req.Mode == "" {
		req.Mode = g.defaultMode
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during topic tree generation",
				"topic", req.Topic, "mode", req.Mode, "panic", r, "stack", string(debug.Stack()))
			tree = nil
			err = fmt.Errorf("%w: panic: %v", ErrGenerationFailed, r)
		}
	}()

	start := time.Now()
	cls := resolveClassification(req)

	switch req.Mode {
	case ModeSingle:
		tree, err = g.singlePass(ctx, req, cls, progress)
	default:
		tree, err = g.iterative(ctx, req, cls, progress)
	}

	if err != nil {
		slog.Error("topic tree generation failed", "topic", req.Topic, "mode", req.Mode, "error", err)
		if errors.Is(err, ErrGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	slog.Info("topic tree generated",
		"topic", req.Topic,
		"mode", req.Mode,
		"main_topics", len(tree.Collection),
		"nodes", tree.CountNodes(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return tree, nil
}

// classification holds the identifiers resolved once per build and the
// display names used in prompts.
type classification struct {
	discipline     string
	context        string
	sector         string
	disciplineName string
	contextName    string
	sectorName     string
}

func resolveClassification(req Request) classification {
	return classification{
		discipline:     taxonomy.Disciplines.Resolve(req.Discipline),
		context:        taxonomy.EducationalContexts.Resolve(req.EducationalContext),
		sector:         taxonomy.EducationSectors.Resolve(req.EducationSector),
		disciplineName: selectedName(req.Discipline),
		contextName:    selectedName(req.EducationalContext),
		sectorName:     selectedName(req.EducationSector),
	}
}

func selectedName(name string) string {
	if name == taxonomy.NoSelection {
		return ""
	}
	return name
}

// metadata is shared by both modes.
func (g *Generator) metadata(req Request, cls classification) models.Metadata {
	return models.Metadata{
		Title:              req.Topic,
		Description:        fmt.Sprintf("Themenbaum für %s", req.Topic),
		TargetAudience:     models.TargetAudience,
		CreatedAt:          g.now().UTC().Truncate(time.Second),
		Version:            models.FormatVersion,
		Author:             models.Author,
		Discipline:         cls.discipline,
		EducationalContext: cls.context,
		EducationSector:    cls.sector,
		Settings: models.Settings{
			NumMain:            req.NumMain,
			NumSub:             req.NumSub,
			NumLeaf:            req.NumLeaf,
			IncludeGeneral:     req.IncludeGeneral,
			IncludeMethodology: req.IncludeMethodology,
			Model:              req.Model,
			Mode:               string(req.Mode),
		},
	}
}

// chat performs one model call under the retry policy.
func (g *Generator) chat(ctx context.Context, op, model string, messages []ai.Message, maxTokens int) (string, error) {
	req := ai.ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &g.temperature,
		MaxTokens:   maxTokens,
	}
	return retry.Do(ctx, g.policy, op, func(ctx context.Context) (string, error) {
		return g.client.Chat(ctx, req)
	})
}

func report(progress ProgressFunc, fraction float64, message string) {
	if progress != nil {
		progress(fraction, message)
	}
}
