// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// job_event.go records generation job status changes in the database for
// audit and debugging purposes. Each entry captures which job changed, to
// what status, and the accompanying message.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"topictree/internal/models"
)

// JobEventStore handles job event log operations.
type JobEventStore struct {
	db *sql.DB
}

// NewJobEventStore creates a new JobEventStore.
func NewJobEventStore(db *sql.DB) *JobEventStore {
	return &JobEventStore{db: db}
}

// Log records a job status change.
func (s *JobEventStore) Log(jobID uuid.UUID, status, message string) {
	_, err := s.db.Exec(`
		INSERT INTO job_events (job_id, status, message)
		VALUES ($1, $2, $3)
	`, jobID, status, message)
	if err != nil {
		// Best-effort: the job itself does not depend on its audit trail.
		slog.Warn("failed to log job event",
			"job_id", jobID,
			"status", status,
			"error", err,
		)
		return
	}
	slog.Debug("job event logged", "job_id", jobID, "status", status)
}

// ForJob returns the events of one job in recording order.
func (s *JobEventStore) ForJob(jobID uuid.UUID) ([]models.JobEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, job_id, status, message, recorded_at
		FROM job_events
		WHERE job_id = $1
		ORDER BY id
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("query job events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// RecentEntries returns the most recent job events across all jobs.
func (s *JobEventStore) RecentEntries(limit int) ([]models.JobEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, job_id, status, message, recorded_at
		FROM job_events
		ORDER BY recorded_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query job events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]models.JobEvent, error) {
	var events []models.JobEvent
	for rows.Next() {
		var e models.JobEvent
		if err := rows.Scan(&e.ID, &e.JobID, &e.Status, &e.Message, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan job event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
