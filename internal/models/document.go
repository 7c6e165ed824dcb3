// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when a topic tree document fails validation.
var ErrInvalidDocument = errors.New("invalid topic tree document")

// Marshal encodes the tree as an indented JSON document. Non-ASCII text is
// written as-is.
func (t *TopicTree) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("marshal topic tree: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseTopicTree decodes a JSON document and validates the node invariants:
// every node has properties and its title equals the primary property title.
func ParseTopicTree(data []byte) (*TopicTree, error) {
	var raw struct {
		Collection *[]*Collection `json:"collection"`
		Metadata   Metadata       `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw.Collection == nil {
		return nil, fmt.Errorf("%w: missing collection", ErrInvalidDocument)
	}

	tree := &TopicTree{Collection: *raw.Collection, Metadata: raw.Metadata}
	var invalid error
	tree.Walk(func(c *Collection, depth int) bool {
		if invalid != nil {
			return false
		}
		invalid = validateNode(c, depth)
		return invalid == nil
	})
	if invalid != nil {
		return nil, invalid
	}
	return tree, nil
}

func validateNode(c *Collection, depth int) error {
	if c == nil {
		return fmt.Errorf("%w: null node at depth %d", ErrInvalidDocument, depth)
	}
	if c.Properties == nil {
		return fmt.Errorf("%w: node %q has no properties", ErrInvalidDocument, c.Title)
	}
	if c.Properties.PrimaryTitle() != c.Title {
		return fmt.Errorf("%w: node %q has property title %q",
			ErrInvalidDocument, c.Title, c.Properties.PrimaryTitle())
	}
	if len(c.Properties.Discipline) > 1 || len(c.Properties.EducationalContext) > 1 {
		return fmt.Errorf("%w: node %q has more than one classification value", ErrInvalidDocument, c.Title)
	}
	return nil
}
