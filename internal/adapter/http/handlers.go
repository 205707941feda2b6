package http

import (
	"net/http"

	"github.com/mapforge/mapforge/internal/domain/task"
	"github.com/mapforge/mapforge/internal/executor"
	"github.com/mapforge/mapforge/internal/manifest"
	"github.com/mapforge/mapforge/internal/store"
)

// serviceVersion is reported on the root and agent-card endpoints.
const serviceVersion = "0.1.0"

// Handlers bundles the dependencies of all HTTP handlers.
type Handlers struct {
	Manifest *manifest.Manifest
	Store    *store.Memory
	Executor *executor.Executor
	BaseURL  string
}

// Root reports basic service information.
func (h *Handlers) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "MapForge A2A agent",
		"version": serviceVersion,
	})
}

// Health reports process liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AgentCard serves the capability manifest for discovery. No auth.
func (h *Handlers) AgentCard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Manifest.Card(h.BaseURL))
}

// CreateTask validates and stores a new task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	t, ok := readJSON[task.Task](w, r)
	if !ok {
		return
	}

	created, err := h.Executor.Create(r.Context(), &t)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// GetTask returns a task by id.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.Get(urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ExecuteTask runs a task. A failed execution still answers 200; callers
// must inspect task.status for the outcome.
func (h *Handlers) ExecuteTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Executor.Execute(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}
