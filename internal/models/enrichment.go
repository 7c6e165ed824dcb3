// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// AdditionalData is the side channel written by enrichment steps
// (compendium, entity extraction, Q&A). The generator never reads or writes it.
type AdditionalData struct {
	CompendiumText string          `json:"compendium_text,omitempty"`
	ExtendedText   string          `json:"extended_text,omitempty"`
	Entities       json.RawMessage `json:"entities,omitempty"`
	QAPairs        *QACollection   `json:"qa_pairs,omitempty"`

	// Extensions holds payloads of collaborators unknown to this schema.
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// QAPair is one question/answer pair.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QACollection groups the Q&A pairs generated for one node.
type QACollection struct {
	QAPairs  []QAPair       `json:"qa_pairs"`
	Topic    string         `json:"topic"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
