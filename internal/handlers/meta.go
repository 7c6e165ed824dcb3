// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"topictree/internal/taxonomy"
)

// Taxonomy lists the selectable classification options in presentation
// order, with the defaults the generation form preselects.
func (a *API) Taxonomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"disciplines":          taxonomy.Disciplines.Entries(),
		"educational_contexts": taxonomy.EducationalContexts.Entries(),
		"education_sectors":    taxonomy.EducationSectors.Entries(),
		"no_selection":         taxonomy.NoSelection,
		"defaults": map[string]string{
			"discipline":          taxonomy.DefaultDiscipline,
			"educational_context": taxonomy.DefaultEducationalContext,
			"education_sector":    taxonomy.DefaultEducationSector,
		},
	})
}

// Providers lists the configured providers and the active one.
func (a *API) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"available": a.providers.Available(),
		"active":    a.providers.ActiveName(),
	})
}

// SetProvider switches the active provider at runtime. Body: {"provider": "..."}.
func (a *API) SetProvider(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(body.Provider)
	if name == "" {
		writeError(w, http.StatusBadRequest, "No provider specified.")
		return
	}

	if err := a.providers.SetActive(name); err != nil {
		slog.Warn("failed to switch AI provider", "provider", name, "error", err)
		writeError(w, http.StatusBadRequest, "Provider "+name+" is not available (no API key configured).")
		return
	}

	slog.Info("ai provider switched", "provider", name)
	a.Providers(w, r)
}
