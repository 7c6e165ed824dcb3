// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package jobs runs topic tree builds asynchronously. Each build runs on its
// own goroutine, publishes progress snapshots to a job cache, and on success
// persists the tree and optionally exports it to object storage.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"topictree/internal/generator"
	"topictree/internal/models"
)

// ErrBusy is returned by Start when the concurrent build limit is reached.
var ErrBusy = errors.New("too many builds in progress")

// ErrClosed is returned by Start after Shutdown.
var ErrClosed = errors.New("job runner is shut down")

// Event statuses recorded in the job event log.
const (
	EventStarted      = "started"
	EventSucceeded    = "succeeded"
	EventFailed       = "failed"
	EventExported     = "exported"
	EventExportFailed = "export_failed"
)

const (
	// snapshotTimeout bounds every job cache write.
	snapshotTimeout = 2 * time.Second

	// DefaultBuildTimeout bounds one build including persistence and export.
	DefaultBuildTimeout = 30 * time.Minute
)

// Builder produces a topic tree.
type Builder interface {
	Generate(ctx context.Context, req generator.Request, progress generator.ProgressFunc) (*models.TopicTree, error)
}

// JobCache stores job snapshots.
type JobCache interface {
	Set(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// TreeStore persists finished trees.
type TreeStore interface {
	Create(t *models.StoredTree) (*models.StoredTree, error)
	SetExportKey(id uuid.UUID, key string) error
}

// EventLog records job status changes. Logging is best-effort.
type EventLog interface {
	Log(jobID uuid.UUID, status, message string)
}

// Exporter uploads a finished tree and returns its object key.
type Exporter interface {
	ExportTree(ctx context.Context, tree *models.TopicTree, at time.Time) (string, error)
}

// Runner starts and tracks builds.
type Runner struct {
	builder     Builder
	cache       JobCache
	trees       TreeStore
	events      EventLog
	exporter    Exporter
	defaultMode generator.Mode
	timeout     time.Duration
	now         func() time.Time

	// slots limits concurrent builds when non-nil.
	slots chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithEventLog records status changes in the given log.
func WithEventLog(l EventLog) Option {
	return func(r *Runner) { r.events = l }
}

// WithExporter exports every persisted tree.
func WithExporter(e Exporter) Option {
	return func(r *Runner) { r.exporter = e }
}

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(m generator.Mode) Option {
	return func(r *Runner) { r.defaultMode = m }
}

// WithBuildTimeout bounds each build.
func WithBuildTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithMaxConcurrent limits the number of builds running at once. Zero
// means unlimited.
func WithMaxConcurrent(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.slots = make(chan struct{}, n)
		} else {
			r.slots = nil
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner. Builds outlive the HTTP request that started
// them; Shutdown cancels and waits for them.
func NewRunner(builder Builder, cache JobCache, trees TreeStore, opts ...Option) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		builder:     builder,
		cache:       cache,
		trees:       trees,
		defaultMode: generator.ModeIterative,
		timeout:     DefaultBuildTimeout,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start validates the request, records a running job and launches the build.
// The returned snapshot is the initial state.
func (r *Runner) Start(ctx context.Context, req generator.Request) (*models.Job, error) {
	if req.Mode == "" {
		req.Mode = r.defaultMode
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if r.slots != nil {
		select {
		case r.slots <- struct{}{}:
		default:
			return nil, ErrBusy
		}
	}

	now := r.now().UTC()
	job := &models.Job{
		ID:        uuid.New(),
		Status:    models.JobRunning,
		Topic:     req.Topic,
		Mode:      string(req.Mode),
		Message:   "queued",
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := r.cache.Set(ctx, job); err != nil {
		r.release()
		return nil, fmt.Errorf("start job: %w", err)
	}
	r.logEvent(job.ID, EventStarted, fmt.Sprintf("%s build for %q", req.Mode, req.Topic))

	snapshot := *job
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.release()
		r.run(job, req)
	}()

	slog.Info("job started", "job_id", job.ID, "topic", req.Topic, "mode", req.Mode)
	return &snapshot, nil
}

// Get returns the latest snapshot of a job, or nil, nil when unknown.
func (r *Runner) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return r.cache.Get(ctx, id)
}

// Wait blocks until every started build has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Shutdown stops accepting builds, cancels running ones and waits for them
// until ctx expires.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job runner shutdown: %w", ctx.Err())
	}
}

func (r *Runner) release() {
	if r.slots != nil {
		<-r.slots
	}
}

// run executes one build. The job pointer is owned by this goroutine.
func (r *Runner) run(job *models.Job, req generator.Request) {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	tree, err := r.builder.Generate(ctx, req, func(fraction float64, message string) {
		job.Progress = fraction
		job.Message = message
		r.publish(job)
	})
	if err != nil {
		r.fail(job, err)
		return
	}

	stored, err := r.trees.Create(models.NewStoredTree(tree))
	if err != nil {
		r.fail(job, fmt.Errorf("persist tree: %w", err))
		return
	}

	if r.exporter != nil {
		r.export(ctx, job, stored)
	}

	job.Status = models.JobSucceeded
	job.Progress = 1
	job.Message = fmt.Sprintf("%d topics generated", stored.NodeCount)
	job.TreeID = &stored.ID
	r.publish(job)
	r.logEvent(job.ID, EventSucceeded, fmt.Sprintf("tree %s with %d nodes", stored.ID, stored.NodeCount))

	slog.Info("job succeeded", "job_id", job.ID, "tree_id", stored.ID, "nodes", stored.NodeCount)
}

// export failures are recorded but do not fail the job; the tree is
// already persisted.
func (r *Runner) export(ctx context.Context, job *models.Job, stored *models.StoredTree) {
	key, err := r.exporter.ExportTree(ctx, stored.Tree, r.now())
	if err != nil {
		slog.Warn("tree export failed", "job_id", job.ID, "tree_id", stored.ID, "error", err)
		r.logEvent(job.ID, EventExportFailed, err.Error())
		return
	}
	if err := r.trees.SetExportKey(stored.ID, key); err != nil {
		slog.Warn("failed to record export key", "tree_id", stored.ID, "key", key, "error", err)
		return
	}
	stored.ExportKey = &key
	r.logEvent(job.ID, EventExported, key)
}

func (r *Runner) fail(job *models.Job, err error) {
	job.Status = models.JobFailed
	job.Error = err.Error()
	job.Message = "generation failed"
	r.publish(job)
	r.logEvent(job.ID, EventFailed, err.Error())

	slog.Error("job failed", "job_id", job.ID, "topic", job.Topic, "error", err)
}

// publish writes the snapshot. A failed write is logged and the build goes on.
func (r *Runner) publish(job *models.Job) {
	job.UpdatedAt = r.now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	if err := r.cache.Set(ctx, job); err != nil {
		slog.Warn("failed to publish job snapshot", "job_id", job.ID, "status", job.Status, "error", err)
	}
}

func (r *Runner) logEvent(jobID uuid.UUID, status, message string) {
	if r.events != nil {
		r.events.Log(jobID, status, message)
	}
}
