// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"topictree/internal/generator"
	"topictree/internal/jobs"
	"topictree/internal/models"
	"topictree/internal/outline"
)

// exportURLTTL is how long a presigned export link stays valid.
const exportURLTTL = 15 * time.Minute

// outline formats and their content types.
var outlineTypes = map[string]string{
	"markdown": "text/markdown; charset=utf-8",
	"html":     "text/html; charset=utf-8",
}

// CreateTree validates the request and starts an asynchronous build.
// Responds 202 with the job id; the build is polled via GetJob.
func (a *API) CreateTree(w http.ResponseWriter, r *http.Request) {
	var req generator.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateTreeRequest(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	job, err := a.jobs.Start(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, generator.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, jobs.ErrBusy):
		w.Header().Set("Retry-After", "30")
		writeError(w, http.StatusServiceUnavailable, "Too many builds in progress. Try again later.")
		return
	case errors.Is(err, jobs.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "Server is shutting down.")
		return
	default:
		slog.Error("failed to start build", "topic", req.Topic, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start build.")
		return
	}

	w.Header().Set("Location", "/api/jobs/"+job.ID.String())
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id": job.ID,
		"status": job.Status,
	})
}

// ListTrees returns stored tree summaries, newest first.
func (a *API) ListTrees(w http.ResponseWriter, r *http.Request) {
	limit, offset, msg := pagination(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	items, err := a.trees.List(limit, offset)
	if err != nil {
		slog.Error("failed to list trees", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list trees.")
		return
	}
	total, err := a.trees.Count()
	if err != nil {
		slog.Error("failed to count trees", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list trees.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetTree returns the tree document.
func (a *API) GetTree(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadTree(w, r)
	if !ok {
		return
	}
	data, err := stored.Tree.Marshal()
	if err != nil {
		slog.Error("failed to encode tree", "tree_id", stored.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to encode tree.")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// TreeOutline renders the tree as Markdown (default) or HTML.
func (a *API) TreeOutline(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}
	contentType, known := outlineTypes[format]
	if !known {
		writeError(w, http.StatusBadRequest, "format must be markdown or html.")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if a.outlines != nil {
		if body, hit := a.outlines.Get(r.Context(), id, format); hit {
			w.Header().Set("Content-Type", contentType)
			w.Write(body)
			return
		}
	}

	stored, ok := a.findTree(w, id)
	if !ok {
		return
	}

	var body string
	if format == "html" {
		var err error
		body, err = outline.HTML(stored.Tree)
		if err != nil {
			slog.Error("failed to render outline", "tree_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to render outline.")
			return
		}
	} else {
		body = outline.Markdown(stored.Tree)
	}

	if a.outlines != nil {
		a.outlines.Set(r.Context(), id, format, []byte(body))
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(body))
}

// ExportURL redirects to a short-lived presigned link to the exported
// document.
func (a *API) ExportURL(w http.ResponseWriter, r *http.Request) {
	if a.exports == nil {
		writeError(w, http.StatusNotFound, "Export is not configured.")
		return
	}
	stored, ok := a.loadTree(w, r)
	if !ok {
		return
	}
	if stored.ExportKey == nil {
		writeError(w, http.StatusNotFound, "Tree has not been exported.")
		return
	}

	url, err := a.exports.PresignedURL(r.Context(), *stored.ExportKey, exportURLTTL)
	if err != nil {
		slog.Error("failed to presign export", "tree_id", stored.ID, "key", *stored.ExportKey, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create export link.")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// DeleteTree removes a stored tree, its cached outlines and its export.
func (a *API) DeleteTree(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := a.trees.Delete(id)
	if err != nil {
		slog.Error("failed to delete tree", "tree_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete tree.")
		return
	}
	if deleted == nil {
		writeError(w, http.StatusNotFound, "Tree not found.")
		return
	}

	if a.outlines != nil {
		a.outlines.Invalidate(r.Context(), id)
	}
	if a.exports != nil && deleted.ExportKey != nil {
		if err := a.exports.Delete(r.Context(), *deleted.ExportKey); err != nil {
			slog.Warn("failed to delete export", "tree_id", id, "key", *deleted.ExportKey, "error", err)
		}
	}

	slog.Info("tree deleted", "tree_id", id, "title", deleted.Title)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) loadTree(w http.ResponseWriter, r *http.Request) (*models.StoredTree, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	return a.findTree(w, id)
}

func (a *API) findTree(w http.ResponseWriter, id uuid.UUID) (*models.StoredTree, bool) {
	stored, err := a.trees.FindByID(id)
	if err != nil {
		slog.Error("failed to load tree", "tree_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load tree.")
		return nil, false
	}
	if stored == nil {
		writeError(w, http.StatusNotFound, "Tree not found.")
		return nil, false
	}
	return stored, true
}
