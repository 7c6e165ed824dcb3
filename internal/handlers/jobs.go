// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
)

// GetJob returns the latest snapshot of a build.
func (a *API) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	job, err := a.jobs.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load job", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load job.")
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "Job not found or expired.")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// JobEvents returns the recorded status changes of a build, oldest first.
func (a *API) JobEvents(w http.ResponseWriter, r *http.Request) {
	if a.events == nil {
		writeError(w, http.StatusNotFound, "Job history is not available.")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	events, err := a.events.ForJob(id)
	if err != nil {
		slog.Error("failed to load job events", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load job events.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": events})
}
