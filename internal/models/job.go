// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of an asynchronous build.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Done reports whether the job reached a final state.
func (s JobStatus) Done() bool {
	return s == JobSucceeded || s == JobFailed
}

// Job is a snapshot of an asynchronous build.
type Job struct {
	ID        uuid.UUID  `json:"id"`
	Status    JobStatus  `json:"status"`
	Topic     string     `json:"topic"`
	Mode      string     `json:"mode"`
	Progress  float64    `json:"progress"`
	Message   string     `json:"message"`
	TreeID    *uuid.UUID `json:"tree_id,omitempty"`
	Error     string     `json:"error,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
