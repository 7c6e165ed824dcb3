// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package jobs

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"topictree/internal/models"
)

// MemoryCache keeps job snapshots in process memory. It serves deployments
// without Valkey; snapshots are lost on restart and never expire.
type MemoryCache struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]models.Job
}

// NewMemoryCache creates an empty in-memory job cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{jobs: make(map[uuid.UUID]models.Job)}
}

// Set stores a copy of the snapshot.
func (m *MemoryCache) Set(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

// Get returns a copy of the snapshot, or nil, nil when unknown.
func (m *MemoryCache) Get(_ context.Context, id uuid.UUID) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}
