// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"strings"

	"topictree/internal/models"
)

// tabWidth is the indentation a tab counts for.
const tabWidth = 4

// ParseOutline turns an indented three-level outline into main topics.
//
//	Main topic: description
//	- Subtopic: description
//	  - Curriculum topic: description
//
// Unindented non-bullet lines are main topics. A bullet is a subtopic when
// it sits at the indentation of the first bullet under the current main
// topic and a leaf when it is indented deeper. Lines without a colon and
// bullets without a parent are skipped, as are main topics that end up with
// neither a description nor subtopics (a preamble such as "Here is the
// tree:"). Counts are not enforced.
func ParseOutline(text string) []*models.Collection {
	var (
		mains     []*models.Collection
		main, sub *models.Collection
		subIndent = -1
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		body := strings.TrimLeft(line, " \t")
		if body == "" {
			continue
		}
		indent := indentWidth(line[:len(line)-len(body)])

		item, isBullet := cutBullet(body)
		if !isBullet {
			title, desc, ok := splitEntry(stripHeading(body))
			if !ok {
				continue
			}
			main = outlineNode(title, desc)
			mains = append(mains, main)
			sub, subIndent = nil, -1
			continue
		}

		if main == nil {
			continue
		}
		title, desc, ok := splitEntry(item)
		if !ok {
			continue
		}

		if subIndent < 0 {
			subIndent = indent
		}
		if indent > subIndent {
			if sub != nil {
				sub.AddChild(outlineNode(title, desc))
			}
			continue
		}
		sub = outlineNode(title, desc)
		main.AddChild(sub)
	}

	out := mains[:0]
	for _, m := range mains {
		if m.Description() == "" && len(m.Subcollections) == 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

func outlineNode(title, desc string) *models.Collection {
	return models.NewCollection(title, models.ShortTitle(title, outlineShortTitleLimit), desc, nil)
}

func indentWidth(ws string) int {
	n := 0
	for _, r := range ws {
		if r == '\t' {
			n += tabWidth
		} else {
			n++
		}
	}
	return n
}

func cutBullet(s string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if rest, ok := strings.CutPrefix(s, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return s, false
}

// stripHeading drops Markdown heading marks and list numbering from a main
// topic line, e.g. "## 1. Mechanics: ...".
func stripHeading(s string) string {
	s = strings.TrimLeft(s, "# ")
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		s = strings.TrimSpace(s[i+1:])
	}
	return s
}

// splitEntry splits "Title: description" on the first colon. Emphasis
// markers around either part are removed.
func splitEntry(s string) (title, desc string, ok bool) {
	title, desc, ok = strings.Cut(s, ":")
	if !ok {
		return "", "", false
	}
	title = strings.Trim(strings.TrimSpace(title), "*_ ")
	desc = strings.Trim(strings.TrimSpace(desc), "*_ ")
	if title == "" {
		return "", "", false
	}
	return title, desc, true
}
