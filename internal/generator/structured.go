// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"topictree/internal/models"
)

// Short title limits of the two parsing strategies.
const (
	structuredShortTitleLimit = 40
	outlineShortTitleLimit    = 30
)

// snippetLimit bounds raw model text quoted in log lines.
const snippetLimit = 200

// descriptionKeys are tried in order; models name the field inconsistently.
var descriptionKeys = []string{"description", "desc", "content", "text"}

// candidate is one validated node of a structured reply.
type candidate struct {
	Title       string
	ShortTitle  string
	Description string
	Keywords    []string
}

// ParseStructured turns a structured model reply into nodes, preserving
// order. Malformed or empty input yields an empty list and a warning; it is
// never an error.
func ParseStructured(raw string) []*models.Collection {
	cands, err := parseCandidates(raw)
	if err != nil {
		slog.Warn("unparseable structured model output", "error", err, "raw", snippet(raw))
		return []*models.Collection{}
	}
	if len(cands) == 0 {
		if strings.TrimSpace(raw) != "" {
			slog.Warn("structured model output has no usable nodes", "raw", snippet(raw))
		}
		return []*models.Collection{}
	}

	out := make([]*models.Collection, 0, len(cands))
	for _, c := range cands {
		out = append(out, models.NewCollection(c.Title, c.ShortTitle, c.Description, c.Keywords))
	}
	return out
}

// parseCandidates reads the span between the first '[' and the last ']' as
// the node list, tolerating prose and wrapper objects around it. When that
// span yields no valid node, the first JSON object is read as a single node.
func parseCandidates(raw string) ([]candidate, error) {
	text := stripFences(raw)
	if text == "" {
		return nil, nil
	}

	var spanErr error
	start, end := strings.IndexByte(text, '['), strings.LastIndexByte(text, ']')
	if start >= 0 && end > start {
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(text[start:end+1]), &elems); err != nil {
			spanErr = fmt.Errorf("decode array: %w", err)
		} else if cands := decodeCandidates(elems); len(cands) > 0 {
			return cands, nil
		}
	}

	obj := strings.IndexByte(text, '{')
	if obj < 0 {
		return nil, spanErr
	}
	var elem json.RawMessage
	if err := json.NewDecoder(strings.NewReader(text[obj:])).Decode(&elem); err != nil {
		if spanErr != nil {
			return nil, spanErr
		}
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if c, ok := decodeCandidate(elem); ok {
		return []candidate{c}, nil
	}
	return nil, nil
}

func decodeCandidates(elems []json.RawMessage) []candidate {
	cands := make([]candidate, 0, len(elems))
	for i, elem := range elems {
		c, ok := decodeCandidate(elem)
		if !ok {
			slog.Debug("skipping structured element", "index", i, "raw", snippet(string(elem)))
			continue
		}
		cands = append(cands, c)
	}
	return cands
}

// stripFences removes a leading ``` or ```json marker and a trailing ```.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = rest
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decodeCandidate(elem json.RawMessage) (candidate, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return candidate{}, false
	}

	title := strings.TrimSpace(stringField(fields, "title"))
	if title == "" {
		return candidate{}, false
	}

	short := strings.TrimSpace(stringField(fields, "shorttitle"))
	if short == "" {
		short = strings.TrimSpace(stringField(fields, "short_title"))
	}
	if short == "" {
		short = models.ShortTitle(title, structuredShortTitleLimit)
	}

	var desc string
	for _, key := range descriptionKeys {
		if _, ok := fields[key]; ok {
			desc = strings.TrimSpace(stringField(fields, key))
			break
		}
	}

	return candidate{
		Title:       title,
		ShortTitle:  short,
		Description: desc,
		Keywords:    keywordsField(fields["keywords"]),
	}, true
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// keywordsField accepts a list of strings or one comma-separated string.
func keywordsField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		var out []string
		for _, s := range strings.Split(joined, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func snippet(s string) string {
	return models.ShortTitle(strings.TrimSpace(s), snippetLimit)
}
