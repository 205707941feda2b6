// Package store provides the in-memory task store. Tasks live for the
// lifetime of the process; there is no eviction.
package store

import (
	"sync"

	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
)

// Memory is an RWMutex-guarded map of tasks keyed by id. Values are copied on
// the way in and out so callers never alias store-owned memory. Updates are
// last-write-wins.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]*task.Task
}

// NewMemory creates an empty task store.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[string]*task.Task)}
}

// Put stores the task, overwriting any existing task with the same id.
func (m *Memory) Put(t *task.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.ID] = t.Clone()
}

// Get returns the task with the given id, or domain.ErrNotFound.
func (m *Memory) Get(id string) (*task.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t.Clone(), nil
}

// Update overwrites the stored task in place. Updating an unknown id returns
// domain.ErrNotFound.
func (m *Memory) Update(t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	m.tasks[t.ID] = t.Clone()
	return nil
}

// Len returns the number of stored tasks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}
