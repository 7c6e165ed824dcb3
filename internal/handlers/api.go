// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: starting builds, polling jobs,
// browsing stored trees and switching the language-model provider.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"topictree/internal/generator"
	"topictree/internal/models"
)

// JobRunner starts builds and reports their state.
type JobRunner interface {
	Start(ctx context.Context, req generator.Request) (*models.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// TreeRepository reads and deletes stored trees.
type TreeRepository interface {
	FindByID(id uuid.UUID) (*models.StoredTree, error)
	List(limit, offset int) ([]models.TreeSummary, error)
	Count() (int, error)
	Delete(id uuid.UUID) (*models.TreeSummary, error)
}

// ProviderRegistry lists and switches language-model providers.
type ProviderRegistry interface {
	Available() []string
	ActiveName() string
	SetActive(name string) error
}

// JobEvents lists the recorded status changes of a job.
type JobEvents interface {
	ForJob(jobID uuid.UUID) ([]models.JobEvent, error)
}

// OutlineCache caches rendered outlines by tree and format.
type OutlineCache interface {
	Get(ctx context.Context, treeID uuid.UUID, format string) ([]byte, bool)
	Set(ctx context.Context, treeID uuid.UUID, format string, body []byte)
	Invalidate(ctx context.Context, treeID uuid.UUID)
}

// Exports gives access to exported tree documents.
type Exports interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Deps bundles the collaborators of the API. Events, Outlines and Exports
// are optional.
type Deps struct {
	Jobs      JobRunner
	Trees     TreeRepository
	Providers ProviderRegistry
	Events    JobEvents
	Outlines  OutlineCache
	Exports   Exports
}

// API serves the JSON endpoints.
type API struct {
	jobs      JobRunner
	trees     TreeRepository
	providers ProviderRegistry
	events    JobEvents
	outlines  OutlineCache
	exports   Exports
}

// NewAPI creates the API handlers.
func NewAPI(d Deps) *API {
	return &API{
		jobs:      d.Jobs,
		trees:     d.Trees,
		providers: d.Providers,
		events:    d.Events,
		outlines:  d.Outlines,
		exports:   d.Exports,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(data)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown
// fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %v", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// pathID parses the {id} URL parameter. On failure it writes 400 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id.")
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit and offset query parameters.
func pagination(r *http.Request) (limit, offset int, msg string) {
	limit, offset = defaultPageSz, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return 0, 0, fmt.Sprintf("limit must be between 1 and %d.", maxPageSize)
		}
		limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, "offset must be a non-negative integer."
		}
		offset = n
	}
	return limit, offset, ""
}
