package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/mapforge/mapforge/internal/middleware"
)

// MountRoutes registers all routes on the given chi router. The agent card
// and health endpoints are public; task routes require the shared secret.
func MountRoutes(r chi.Router, h *Handlers, apiKey string) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/agent-card", h.AgentCard)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(apiKey))
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}/execute", h.ExecuteTask)
	})
}
