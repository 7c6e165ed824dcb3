// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TreeSummary is a persisted tree without its document.
type TreeSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Mode      string    `json:"mode"`
	Model     string    `json:"model"`
	NodeCount int       `json:"node_count"`
	ExportKey *string   `json:"export_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredTree is a persisted topic tree.
type StoredTree struct {
	TreeSummary
	Tree *TopicTree `json:"tree"`
}

// NewStoredTree derives the summary columns from the tree metadata.
func NewStoredTree(tree *TopicTree) *StoredTree {
	return &StoredTree{
		TreeSummary: TreeSummary{
			Title:     tree.Metadata.Title,
			Topic:     tree.Metadata.Title,
			Mode:      tree.Metadata.Settings.Mode,
			Model:     tree.Metadata.Settings.Model,
			NodeCount: tree.CountNodes(),
		},
		Tree: tree,
	}
}

// JobEvent is one recorded status change of a generation job.
type JobEvent struct {
	ID         int64     `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	RecordedAt time.Time `json:"recorded_at"`
}
