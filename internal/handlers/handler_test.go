// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory collaborators and a router for the
// handler tests.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"topictree/internal/generator"
	"topictree/internal/models"
)

type fakeRunner struct {
	mu       sync.Mutex
	started  []generator.Request
	jobs     map[uuid.UUID]*models.Job
	startErr error
	getErr   error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{jobs: make(map[uuid.UUID]*models.Job)}
}

func (f *fakeRunner) Start(_ context.Context, req generator.Request) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return nil, f.startErr
	}
	if req.Mode == "" {
		req.Mode = generator.ModeIterative
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.started = append(f.started, req)
	job := &models.Job{ID: uuid.New(), Status: models.JobRunning, Topic: req.Topic, Mode: string(req.Mode)}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeRunner) Get(_ context.Context, id uuid.UUID) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.jobs[id], nil
}

type fakeTrees struct {
	mu      sync.Mutex
	trees   map[uuid.UUID]*models.StoredTree
	finds   int
	failAll bool
}

func newFakeTrees(trees ...*models.StoredTree) *fakeTrees {
	f := &fakeTrees{trees: make(map[uuid.UUID]*models.StoredTree)}
	for _, t := range trees {
		f.trees[t.ID] = t
	}
	return f
}

var errDB = errors.New("db down")

func (f *fakeTrees) FindByID(id uuid.UUID) (*models.StoredTree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.failAll {
		return nil, errDB
	}
	return f.trees[id], nil
}

func (f *fakeTrees) List(limit, offset int) ([]models.TreeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDB
	}
	var all []models.TreeSummary
	for _, t := range f.trees {
		all = append(all, t.TreeSummary)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []models.TreeSummary{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeTrees) Count() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errDB
	}
	return len(f.trees), nil
}

func (f *fakeTrees) Delete(id uuid.UUID) (*models.TreeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDB
	}
	t, ok := f.trees[id]
	if !ok {
		return nil, nil
	}
	delete(f.trees, id)
	return &t.TreeSummary, nil
}

type fakeProviders struct {
	available []string
	active    string
}

func (f *fakeProviders) Available() []string { return f.available }
func (f *fakeProviders) ActiveName() string  { return f.active }
func (f *fakeProviders) SetActive(name string) error {
	for _, a := range f.available {
		if a == name {
			f.active = name
			return nil
		}
	}
	return errors.New("not available")
}

type fakeEvents struct {
	events map[uuid.UUID][]models.JobEvent
}

func (f *fakeEvents) ForJob(id uuid.UUID) ([]models.JobEvent, error) {
	return f.events[id], nil
}

type fakeOutlines struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []uuid.UUID
}

func newFakeOutlines() *fakeOutlines {
	return &fakeOutlines{entries: make(map[string][]byte)}
}

func (f *fakeOutlines) Get(_ context.Context, id uuid.UUID, format string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.entries[id.String()+":"+format]
	return b, ok
}

func (f *fakeOutlines) Set(_ context.Context, id uuid.UUID, format string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[id.String()+":"+format] = body
}

func (f *fakeOutlines) Invalidate(_ context.Context, id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, id)
	for k := range f.entries {
		if strings.HasPrefix(k, id.String()) {
			delete(f.entries, k)
		}
	}
}

type fakeExports struct {
	deleted []string
}

func (f *fakeExports) PresignedURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://s3.example.com/exports/" + key + "?X-Amz-Expires=" + expires.String(), nil
}

func (f *fakeExports) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// storedTree builds a persisted two-level tree.
func storedTree(title string, created time.Time) *models.StoredTree {
	main := models.NewCollection("Mechanik", "Mechanik", "Lehre von Bewegung", nil)
	main.AddChild(models.NewCollection("Kinematik", "Kinematik", "Bewegung ohne Kräfte", nil))
	tree := &models.TopicTree{
		Collection: []*models.Collection{main},
		Metadata: models.Metadata{
			Title:       title,
			Description: "Themenbaum für " + title,
			Version:     models.FormatVersion,
			Settings:    models.Settings{Mode: "iterative", Model: "gpt-4o-mini"},
		},
	}
	st := models.NewStoredTree(tree)
	st.ID = uuid.New()
	st.CreatedAt = created
	return st
}

// newTestRouter mounts the API the way the server does.
func newTestRouter(api *API) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/taxonomy", api.Taxonomy)
		r.Get("/providers", api.Providers)
		r.Put("/providers/active", api.SetProvider)
		r.Post("/trees", api.CreateTree)
		r.Get("/trees", api.ListTrees)
		r.Get("/trees/{id}", api.GetTree)
		r.Get("/trees/{id}/outline", api.TreeOutline)
		r.Get("/trees/{id}/export", api.ExportURL)
		r.Delete("/trees/{id}", api.DeleteTree)
		r.Get("/jobs/{id}", api.GetJob)
		r.Get("/jobs/{id}/events", api.JobEvents)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
