// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain of the topic
// tree service. Everything except the health check lives under /api.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"topictree/internal/handlers"
	"topictree/internal/middleware"
)

// New creates the configured Chi router. A nil limiter disables rate
// limiting of build requests.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/taxonomy", api.Taxonomy)

		r.Get("/providers", api.Providers)
		r.Put("/providers/active", api.SetProvider)

		r.Route("/trees", func(r chi.Router) {
			// Builds are expensive; only their creation is throttled.
			r.Group(func(r chi.Router) {
				if limiter != nil {
					r.Use(limiter.Middleware)
				}
				r.Post("/", api.CreateTree)
			})
			r.Get("/", api.ListTrees)
			r.Get("/{id}", api.GetTree)
			r.Delete("/{id}", api.DeleteTree)
			r.Get("/{id}/outline", api.TreeOutline)
			r.Get("/{id}/export", api.ExportURL)
		})

		r.Get("/jobs/{id}", api.GetJob)
		r.Get("/jobs/{id}/events", api.JobEvents)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, `{"error":"Not found."}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, `{"error":"Method not allowed."}`)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, `{"status":"ok"}`)
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
