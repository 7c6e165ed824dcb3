// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"topictree/internal/models"
)

const (
	// jobKeyPrefix is the Valkey key prefix for job snapshots.
	jobKeyPrefix = "job:"

	// DefaultJobTTL is how long a job snapshot is kept after its last update.
	DefaultJobTTL = time.Hour
)

// JobCache stores job snapshots as JSON in Valkey.
type JobCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobCache creates a job cache backed by the given Valkey client.
func NewJobCache(client *redis.Client, ttl time.Duration) *JobCache {
	if ttl == 0 {
		ttl = DefaultJobTTL
	}
	return &JobCache{client: client, ttl: ttl}
}

// JobKey returns the Valkey key of a job.
func JobKey(id uuid.UUID) string {
	return jobKeyPrefix + id.String()
}

// Set writes a snapshot, resetting its TTL.
func (jc *JobCache) Set(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("job cache marshal: %w", err)
	}
	if err := jc.client.Set(ctx, JobKey(job.ID), data, jc.ttl).Err(); err != nil {
		return fmt.Errorf("job cache set: %w", err)
	}
	return nil
}

// Get reads a snapshot. Returns nil, nil when the job is unknown or expired.
func (jc *JobCache) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	data, err := jc.client.Get(ctx, JobKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("job cache get: %w", err)
	}

	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("job cache unmarshal: %w", err)
	}
	return &job, nil
}
