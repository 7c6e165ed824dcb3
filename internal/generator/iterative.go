// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"topictree/internal/models"
)

// Special main topics.
const (
	GeneralTitle          = "General"
	MethodologyTitle      = "Methodology and Didactics"
	MethodologyShortTitle = "Methodology & Didactics"
)

// progressTracker computes done / (done + known remaining calls). The
// remaining count grows as levels return, so the raw ratio can dip; the
// reported value never does.
type progressTracker struct {
	fn        ProgressFunc
	done      int
	remaining int
	last      float64
}

func (p *progressTracker) expect(n int) { p.remaining += n }

func (p *progressTracker) complete() {
	p.done++
	p.remaining--
}

func (p *progressTracker) report(message string) {
	if p.fn == nil {
		return
	}
	f := 0.0
	if total := p.done + p.remaining; total > 0 {
		f = float64(p.done) / float64(total)
	}
	if f < p.last {
		f = p.last
	}
	p.last = f
	p.fn(f, message)
}

func (p *progressTracker) finish(message string) {
	p.last = 1
	if p.fn != nil {
		p.fn(1, message)
	}
}

// iterative builds the tree top-down: one call for the main topics, one per
// main topic for its subtopics and one per subtopic for its leaves. Calls
// are strictly sequential. A branch whose reply parses to nothing is left
// empty; a call that fails after retries fails the build.
func (g *Generator) iterative(ctx context.Context, req Request, cls classification, progress ProgressFunc) (*models.TopicTree, error) {
	pc := newPromptContext(req, cls)
	pt := &progressTracker{fn: progress}
	var taken []string

	pt.expect(1)
	pt.report("Generating main topics...")

	mains, err := g.structured(ctx, req.Model, "main topics",
		mainTopicsPrompt(pc, req.NumMain, req.IncludeGeneral, req.IncludeMethodology))
	if err != nil {
		return nil, fmt.Errorf("main topics: %w", err)
	}
	pt.complete()
	if len(mains) == 0 {
		return nil, ErrNoMainTopics
	}

	if req.IncludeGeneral {
		mains = placeSpecial(mains, isGeneral, true, func() *models.Collection {
			return models.NewCollection(GeneralTitle, GeneralTitle,
				fmt.Sprintf("Fundamental aspects and overview of %s", req.Topic), nil)
		})
	}
	if req.IncludeMethodology {
		mains = placeSpecial(mains, isMethodology, false, func() *models.Collection {
			return models.NewCollection(MethodologyTitle, MethodologyShortTitle,
				fmt.Sprintf("Methods and didactic approaches for %s", req.Topic), nil)
		})
	}
	for _, m := range mains {
		taken = append(taken, m.Title)
	}

	pt.expect(len(mains))
	pt.report(fmt.Sprintf("Main topics created: %d", len(mains)))

	for _, main := range mains {
		pt.report(fmt.Sprintf("Generating subtopics for %q...", main.Title))

		subs, err := g.structured(ctx, req.Model, "subtopics",
			subTopicsPrompt(pc, req.NumSub, main.Title, main.Description(), taken))
		if err != nil {
			return nil, fmt.Errorf("subtopics of %q: %w", main.Title, err)
		}
		pt.complete()
		pt.expect(len(subs))
		if len(subs) == 0 {
			slog.Warn("no subtopics generated, branch left empty", "main_topic", main.Title)
		}
		for _, sub := range subs {
			main.AddChild(sub)
			taken = append(taken, sub.Title)
		}
		pt.report(fmt.Sprintf("Subtopics for %q created: %d", main.Title, len(subs)))

		for _, sub := range main.Subcollections {
			pt.report(fmt.Sprintf("Generating curriculum topics for %q...", sub.Title))

			leaves, err := g.structured(ctx, req.Model, "curriculum topics",
				leafTopicsPrompt(pc, req.NumLeaf, main.Title, sub.Title, sub.Description(), taken))
			if err != nil {
				return nil, fmt.Errorf("curriculum topics of %q: %w", sub.Title, err)
			}
			pt.complete()
			if len(leaves) == 0 {
				slog.Warn("no curriculum topics generated, branch left empty", "subtopic", sub.Title)
			}
			for _, leaf := range leaves {
				sub.AddChild(leaf)
				taken = append(taken, leaf.Title)
			}
			pt.report(fmt.Sprintf("Curriculum topics for %q created: %d", sub.Title, len(leaves)))
		}
	}

	tree := &models.TopicTree{
		Collection: mains,
		Metadata:   g.metadata(req, cls),
	}
	Propagate(tree, cls.discipline, cls.context)

	pt.finish("Topic tree generated")
	return tree, nil
}

// structured performs one structured call. An empty reply is an empty
// result, not an error.
func (g *Generator) structured(ctx context.Context, model, op, prompt string) ([]*models.Collection, error) {
	text, err := g.chat(ctx, op, model, structuredMessages(prompt), g.maxTokens)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		slog.Warn("empty model reply", "op", op)
		return []*models.Collection{}, nil
	}
	return ParseStructured(text), nil
}

func isGeneral(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), GeneralTitle)
}

func isMethodology(title string) bool {
	t := strings.TrimSpace(title)
	return strings.EqualFold(t, MethodologyTitle) || strings.EqualFold(t, MethodologyShortTitle)
}

// placeSpecial moves the first node matching match to the front (or the
// back), dropping further matches. When none matches, a node from create is
// inserted instead.
func placeSpecial(mains []*models.Collection, match func(string) bool, front bool, create func() *models.Collection) []*models.Collection {
	var special *models.Collection
	rest := make([]*models.Collection, 0, len(mains)+1)
	for _, m := range mains {
		if match(m.Title) {
			if special == nil {
				special = m
			}
			continue
		}
		rest = append(rest, m)
	}
	if special == nil {
		special = create()
	}
	if front {
		return append([]*models.Collection{special}, rest...)
	}
	return append(rest, special)
}
