// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"topictree/internal/ai"
)

// maxExistingTitles bounds the "already used" list sent with each prompt.
const maxExistingTitles = 150

const structuredSystemPrompt = `You are a helpful assistant for teaching and learning situations. You build structured topic trees for educational content.

Always answer with pure JSON only: no code fences, no Markdown, no commentary.
Return a JSON array of objects of this form:
[
  {
    "title": "Topic title",
    "shorttitle": "Short title",
    "description": "Description",
    "keywords": ["keyword 1", "keyword 2"]
  }
]

Rules:
- Titles: use full forms instead of abbreviations, "vs." for contrasts, "and" to join related terms, nouns, no special characters, mark homonyms with parentheses.
- Short titles: at most 20 characters, no special characters, unique.
- Descriptions: at most 5 concise sentences, active voice, ordered definition, relevance, characteristics, application.
- Never repeat a title, and never reuse a title that is listed as already taken.`

const outlineSystemPrompt = `You are an expert in building structured topic trees for educational institutions.`

// promptContext carries the parts shared by every prompt of one build.
type promptContext struct {
	topic          string
	disciplineName string
	contextName    string
	sectorName     string
}

func newPromptContext(req Request, cls classification) promptContext {
	return promptContext{
		topic:          req.Topic,
		disciplineName: cls.disciplineName,
		contextName:    cls.contextName,
		sectorName:     cls.sectorName,
	}
}

// scope renders the discipline and level lines, omitting unset ones.
func (p promptContext) scope() string {
	var b strings.Builder
	if p.disciplineName != "" {
		fmt.Fprintf(&b, "Discipline: %s\n", p.disciplineName)
	}
	if p.contextName != "" {
		fmt.Fprintf(&b, "Educational level: %s\n", p.contextName)
	}
	if p.sectorName != "" {
		fmt.Fprintf(&b, "Education sector: %s\n", p.sectorName)
	}
	return b.String()
}

func takenTitles(titles []string) string {
	if len(titles) > maxExistingTitles {
		titles = titles[len(titles)-maxExistingTitles:]
	}
	if titles == nil {
		titles = []string{}
	}
	b, _ := json.Marshal(titles)
	return string(b)
}

func structuredMessages(user string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: structuredSystemPrompt},
		{Role: ai.RoleUser, Content: user},
	}
}

func mainTopicsPrompt(p promptContext, n int, includeGeneral, includeMethodology bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a list of %d main topics for the subject %q.\n\n", n, p.topic)
	b.WriteString(p.scope())
	if includeGeneral {
		fmt.Fprintf(&b, "Place a main topic %q first.\n", GeneralTitle)
	}
	if includeMethodology {
		fmt.Fprintf(&b, "Place a main topic %q last.\n", MethodologyTitle)
	}
	b.WriteString("The main topics should cover the subject well and be clearly separated from each other.\n")
	b.WriteString("Give a short description for every main topic.\n")
	return b.String()
}

func subTopicsPrompt(p promptContext, n int, main string, mainDescription string, taken []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a list of %d subtopics for the main topic %q in the context of %q.\n\n", n, main, p.topic)
	fmt.Fprintf(&b, "Main topic description: %s\n", mainDescription)
	b.WriteString(p.scope())
	fmt.Fprintf(&b, "\nThe subtopics should cover specific aspects of %q.\n", main)
	b.WriteString("Give a short description for every subtopic.\n\n")
	fmt.Fprintf(&b, "Titles already taken: %s\n", takenTitles(taken))
	return b.String()
}

func leafTopicsPrompt(p promptContext, n int, main, sub, subDescription string, taken []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a list of %d curriculum topics for the subtopic %q within the main topic %q of %q.\n\n",
		n, sub, main, p.topic)
	fmt.Fprintf(&b, "Subtopic description: %s\n", subDescription)
	b.WriteString(p.scope())
	fmt.Fprintf(&b, "\nThe curriculum topics should be concrete teaching units for %q.\n", sub)
	b.WriteString("Give a detailed description for every curriculum topic.\n\n")
	fmt.Fprintf(&b, "Titles already taken: %s\n", takenTitles(taken))
	return b.String()
}

func outlineMessages(p promptContext, req Request) []ai.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a multi-level topic tree for: %s\n\n", p.topic)
	b.WriteString("The topic tree must have this structure:\n")
	fmt.Fprintf(&b, "- %d main topics\n", req.NumMain)
	fmt.Fprintf(&b, "- %d subtopics per main topic\n", req.NumSub)
	fmt.Fprintf(&b, "- %d curriculum topics per subtopic\n\n", req.NumLeaf)
	if req.IncludeGeneral {
		fmt.Fprintf(&b, "- Add a main topic %q in first position\n", GeneralTitle)
	}
	if req.IncludeMethodology {
		fmt.Fprintf(&b, "- Add a main topic %q in last position\n", MethodologyTitle)
	}
	b.WriteString(p.scope())
	b.WriteString("\nGive a short description for every topic.\n\n")
	b.WriteString("Format (no other text, no Markdown emphasis):\n")
	b.WriteString("<Main topic>: <short description>\n")
	b.WriteString("- <Subtopic>: <short description>\n")
	b.WriteString("  - <Curriculum topic>: <short description>\n")

	return []ai.Message{
		{Role: ai.RoleSystem, Content: outlineSystemPrompt},
		{Role: ai.RoleUser, Content: b.String()},
	}
}
