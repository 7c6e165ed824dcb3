// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"fmt"
	"log/slog"

	"topictree/internal/models"
)

// singlePass asks for the whole tree in one outline reply. Special topics
// are requested through the prompt only.
func (g *Generator) singlePass(ctx context.Context, req Request, cls classification, progress ProgressFunc) (*models.TopicTree, error) {
	report(progress, 0, "Generating topic tree...")

	pc := newPromptContext(req, cls)
	// The outline carries the whole tree, so the per-level token limit does
	// not apply; the provider default is used.
	text, err := g.chat(ctx, "outline", req.Model, outlineMessages(pc, req), 0)
	if err != nil {
		return nil, fmt.Errorf("outline call: %w", err)
	}

	mains := ParseOutline(text)
	if len(mains) == 0 {
		slog.Warn("outline reply contained no main topics", "topic", req.Topic, "raw", snippet(text))
		return nil, ErrNoMainTopics
	}

	tree := &models.TopicTree{
		Collection: mains,
		Metadata:   g.metadata(req, cls),
	}
	Propagate(tree, cls.discipline, cls.context)

	report(progress, 1, fmt.Sprintf("Topic tree generated: %d main topics", len(mains)))
	return tree, nil
}
