// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists generated topic trees and job events in
// PostgreSQL. Trees are kept whole as JSONB documents next to a few
// summary columns used for listing.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"topictree/internal/models"
)

// TreeStore handles all topic tree database operations.
type TreeStore struct {
	db *sql.DB
}

// NewTreeStore creates a new TreeStore with the given database connection.
func NewTreeStore(db *sql.DB) *TreeStore {
	return &TreeStore{db: db}
}

// summaryColumns lists the columns selected for tree summaries.
const summaryColumns = `id, title, topic, mode, model, node_count, export_key, created_at`

func scanSummary(scanner interface{ Scan(...any) error }, extra ...any) (*models.TreeSummary, error) {
	var s models.TreeSummary
	dest := append([]any{
		&s.ID, &s.Title, &s.Topic, &s.Mode, &s.Model, &s.NodeCount, &s.ExportKey, &s.CreatedAt,
	}, extra...)
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a tree and returns it with the generated ID and timestamp.
func (s *TreeStore) Create(t *models.StoredTree) (*models.StoredTree, error) {
	doc, err := t.Tree.Marshal()
	if err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO topic_trees (title, topic, mode, model, node_count, document)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		t.Title, t.Topic, t.Mode, t.Model, t.NodeCount, string(doc),
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}
	return t, nil
}

// FindByID retrieves a tree with its document. Returns nil, nil when no
// tree has the given ID.
func (s *TreeStore) FindByID(id uuid.UUID) (*models.StoredTree, error) {
	var doc []byte
	row := s.db.QueryRow(`SELECT `+summaryColumns+`, document FROM topic_trees WHERE id = $1`, id)
	summary, err := scanSummary(row, &doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tree by id: %w", err)
	}

	tree, err := models.ParseTopicTree(doc)
	if err != nil {
		return nil, fmt.Errorf("find tree by id: %w", err)
	}
	return &models.StoredTree{TreeSummary: *summary, Tree: tree}, nil
}

// List returns tree summaries, newest first, with pagination.
func (s *TreeStore) List(limit, offset int) ([]models.TreeSummary, error) {
	rows, err := s.db.Query(`
		SELECT `+summaryColumns+`
		FROM topic_trees
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	defer rows.Close()

	var items []models.TreeSummary
	for rows.Next() {
		item, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tree: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// SetExportKey records where the tree document was exported to.
func (s *TreeStore) SetExportKey(id uuid.UUID, key string) error {
	_, err := s.db.Exec(`UPDATE topic_trees SET export_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("set export key: %w", err)
	}
	return nil
}

// Delete removes a tree and returns its summary so the caller can clean up
// the exported object. Returns nil, nil when no tree has the given ID.
func (s *TreeStore) Delete(id uuid.UUID) (*models.TreeSummary, error) {
	row := s.db.QueryRow(`DELETE FROM topic_trees WHERE id = $1 RETURNING `+summaryColumns, id)
	summary, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete tree: %w", err)
	}
	return summary, nil
}

// Count returns the total number of stored trees.
func (s *TreeStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM topic_trees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count trees: %w", err)
	}
	return count, nil
}
