// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package outline renders a topic tree as a readable Markdown outline:
// the tree title as H1, each main topic as H2 followed by its description,
// subtopics as bold bullets and deeper levels as nested italic bullets.
package outline

import (
	"strings"

	"topictree/internal/markdown"
	"topictree/internal/models"
)

// Markdown renders the tree as Markdown.
func Markdown(tree *models.TopicTree) string {
	var b strings.Builder

	if title := tree.Metadata.Title; title != "" {
		b.WriteString("# " + escape(title) + "\n\n")
	}
	if desc := tree.Metadata.Description; desc != "" {
		b.WriteString(escape(desc) + "\n\n")
	}

	for i, main := range tree.Collection {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		b.WriteString("## " + escape(main.Title) + "\n\n")
		if desc := main.Description(); desc != "" {
			b.WriteString(escape(desc) + "\n\n")
		}
		if len(main.Subcollections) == 0 {
			continue
		}
		for _, sub := range main.Subcollections {
			writeItem(&b, sub, 0)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the tree outline as an HTML fragment.
func HTML(tree *models.TopicTree) (string, error) {
	return markdown.ToHTML(Markdown(tree))
}

// writeItem writes one bullet per node; level 0 is a subtopic.
func writeItem(b *strings.Builder, c *models.Collection, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString("- ")
	if level == 0 {
		b.WriteString("**" + escape(c.Title) + "**")
	} else {
		b.WriteString("*" + escape(c.Title) + "*")
	}
	if desc := c.Description(); desc != "" {
		b.WriteString(": " + escape(flatten(desc)))
	}
	b.WriteString("\n")

	for _, child := range c.Subcollections {
		writeItem(b, child, level+1)
	}
}

// mdEscaper backslash-escapes the characters that would change the meaning
// of inline text.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}

// flatten joins a multi-line description onto one bullet line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
