// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the topic tree document: the nodes (collections),
// their classification properties, and the tree-level metadata. The JSON
// shape is the exchange format consumed by enrichment, persistence and export.
package models

import (
	"time"
	"unicode/utf8"
)

// Document constants stamped into every generated tree.
const (
	FormatVersion  = "1.0"
	Author         = "Themenbaum Generator"
	TargetAudience = "Lehrkräfte"

	// DefaultEndUserRole is the intended end-user role of every node.
	DefaultEndUserRole = "http://w3id.org/openeduhub/vocabs/intendedEndUserRole/teacher"
)

// Properties is the classification record owned by exactly one Collection.
// Every field is a list; discipline and educational context carry zero or
// one element and are never stored bare.
type Properties struct {
	Title               []string `json:"cm:title"`
	ShortTitle          []string `json:"ccm:collectionshorttitle"`
	Description         []string `json:"cm:description"`
	Keywords            []string `json:"cclom:general_keyword"`
	Discipline          []string `json:"ccm:taxonid,omitempty"`
	EducationalContext  []string `json:"ccm:educationalcontext,omitempty"`
	IntendedEndUserRole []string `json:"ccm:educationalintendedenduserrole,omitempty"`
}

// NewProperties builds a Properties record with single-element title, short
// title and description lists. A nil keyword list becomes an empty one.
func NewProperties(title, shortTitle, description string, keywords []string) *Properties {
	kw := make([]string, len(keywords))
	copy(kw, keywords)
	return &Properties{
		Title:               []string{title},
		ShortTitle:          []string{shortTitle},
		Description:         []string{description},
		Keywords:            kw,
		IntendedEndUserRole: []string{DefaultEndUserRole},
	}
}

// SetClassification overwrites the discipline and educational context.
// Empty identifiers clear the field.
func (p *Properties) SetClassification(discipline, context string) {
	p.Discipline = wrap(discipline)
	p.EducationalContext = wrap(context)
}

// PrimaryTitle returns the current title value.
func (p *Properties) PrimaryTitle() string { return first(p.Title) }

// PrimaryDescription returns the current description value.
func (p *Properties) PrimaryDescription() string { return first(p.Description) }

// PrimaryShortTitle returns the current short title value.
func (p *Properties) PrimaryShortTitle() string { return first(p.ShortTitle) }

func wrap(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Collection is one node of the topic tree at any depth.
type Collection struct {
	Title          string          `json:"title"`
	ShortTitle     string          `json:"shorttitle"`
	Properties     *Properties     `json:"properties"`
	Subcollections []*Collection   `json:"subcollections,omitempty"`
	AdditionalData *AdditionalData `json:"additional_data,omitempty"`
}

// NewCollection creates a childless node whose title matches its properties.
func NewCollection(title, shortTitle, description string, keywords []string) *Collection {
	return &Collection{
		Title:      title,
		ShortTitle: shortTitle,
		Properties: NewProperties(title, shortTitle, description, keywords),
	}
}

// Description returns the node's primary description.
func (c *Collection) Description() string {
	if c.Properties == nil {
		return ""
	}
	return c.Properties.PrimaryDescription()
}

// AddChild appends a child, preserving insertion order.
func (c *Collection) AddChild(child *Collection) {
	c.Subcollections = append(c.Subcollections, child)
}

// Metadata describes a whole tree and how it was generated.
type Metadata struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	TargetAudience     string    `json:"target_audience"`
	CreatedAt          time.Time `json:"created_at"`
	Version            string    `json:"version"`
	Author             string    `json:"author"`
	Discipline         string    `json:"discipline"`
	EducationalContext string    `json:"educational_context"`
	EducationSector    string    `json:"education_sector"`
	Settings           Settings  `json:"settings"`
}

// Settings records the structural parameters of a build.
type Settings struct {
	NumMain            int    `json:"num_main"`
	NumSub             int    `json:"num_sub"`
	NumLeaf            int    `json:"num_leaf"`
	IncludeGeneral     bool   `json:"include_general"`
	IncludeMethodology bool   `json:"include_methodology"`
	Model              string `json:"model"`
	Mode               string `json:"mode"`
}

// TopicTree is the root aggregate. It exclusively owns all collections.
type TopicTree struct {
	Collection []*Collection `json:"collection"`
	Metadata   Metadata      `json:"metadata"`
}

// Walk visits every node depth-first in display order. Main topics have
// depth 0. Returning false from fn skips the node's children.
func (t *TopicTree) Walk(fn func(c *Collection, depth int) bool) {
	for _, c := range t.Collection {
		walk(c, 0, fn)
	}
}

func walk(c *Collection, depth int, fn func(*Collection, int) bool) {
	if !fn(c, depth) {
		return
	}
	for _, sub := range c.Subcollections {
		walk(sub, depth+1, fn)
	}
}

// CountNodes returns the number of collections in the tree.
func (t *TopicTree) CountNodes() int {
	n := 0
	t.Walk(func(*Collection, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the number of levels in the tree; 0 for an empty tree.
func (t *TopicTree) Depth() int {
	deepest := 0
	t.Walk(func(_ *Collection, depth int) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// Ellipsis marks a truncated short title.
const Ellipsis = "..."

// ShortTitle derives a short title from title: at most limit characters,
// followed by Ellipsis when truncation happened.
func ShortTitle(title string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(title) <= limit {
		return title
	}
	runes := []rune(title)
	return string(runes[:limit]) + Ellipsis
}
