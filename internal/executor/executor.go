// Package executor orchestrates the task lifecycle: validation, translator
// dispatch, upstream invocation and status transitions.
package executor

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	mfotel "github.com/mapforge/mapforge/internal/adapter/otel"
	"github.com/mapforge/mapforge/internal/domain"
	"github.com/mapforge/mapforge/internal/domain/task"
	"github.com/mapforge/mapforge/internal/manifest"
	"github.com/mapforge/mapforge/internal/translate"
)

// Store is the task store the executor reads and writes.
type Store interface {
	Put(t *task.Task)
	Get(id string) (*task.Task, error)
	Update(t *task.Task) error
}

// Upstream performs GET calls against the mapping provider.
type Upstream interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
}

// Executor is the central control component for task creation and execution.
type Executor struct {
	store      Store
	manifest   *manifest.Manifest
	registry   *translate.Registry
	negotiator *translate.Negotiator
	upstream   Upstream
	metrics    *mfotel.Metrics
	group      singleflight.Group
	now        func() time.Time
}

// New creates an Executor. metrics may be nil when telemetry is disabled.
func New(store Store, m *manifest.Manifest, upstream Upstream, metrics *mfotel.Metrics) *Executor {
	return &Executor{
		store:      store,
		manifest:   m,
		registry:   translate.NewRegistry(),
		negotiator: translate.NewNegotiator(),
		upstream:   upstream,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Create validates the task type against the manifest and stores the task.
// Client-supplied status and timestamps are overridden; a missing id gets a
// generated UUID. The caller may pre-declare a requested output format on the
// output field; it is preserved for format negotiation at execution time.
func (e *Executor) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	if !e.manifest.Supports(t.Type) {
		return nil, domain.Validationf("unsupported task type %q", t.Type)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	now := e.now()
	t.Status = task.StatusCreated
	t.CreatedAt = now
	t.UpdatedAt = now

	e.store.Put(t)
	if e.metrics != nil {
		e.count(ctx, e.metrics.TasksCreated, t.Type)
	}
	slog.Info("task created", "id", t.ID, "type", t.Type)
	return t.Clone(), nil
}

// Execute runs the task with the given id through its translator and the
// upstream provider. Translation and upstream failures are recorded on the
// task (status failed, text output); only an unknown id returns an error.
// Concurrent executes of the same id are collapsed into a single run.
func (e *Executor) Execute(ctx context.Context, id string) (*task.Task, error) {
	v, err, _ := e.group.Do(id, func() (any, error) {
		return e.execute(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*task.Task).Clone(), nil
}

func (e *Executor) execute(ctx context.Context, id string) (*task.Task, error) {
	t, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	ctx, span := mfotel.StartExecuteSpan(ctx, t.ID, string(t.Type))
	defer span.End()

	// Transition to in_progress is written before the upstream call so a
	// concurrent reader never observes a running task as created.
	start := e.now()
	t.Status = task.StatusInProgress
	e.touch(t)
	if err := e.store.Update(t); err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.count(ctx, e.metrics.ExecutesStarted, t.Type)
	}

	// The requested output format, if the caller pre-declared one.
	var requested task.OutputFormat
	if t.Output != nil {
		requested = t.Output.Format
	}

	out, runErr := e.run(ctx, t, requested)
	if runErr != nil {
		t.Status = task.StatusFailed
		t.Output = task.TextOutput("Error executing task: " + runErr.Error())
		if e.metrics != nil {
			e.count(ctx, e.metrics.TasksFailed, t.Type)
		}
		slog.Warn("task failed", "id", t.ID, "type", t.Type, "error", runErr)
	} else {
		t.Status = task.StatusCompleted
		t.Output = out
		if e.metrics != nil {
			e.count(ctx, e.metrics.TasksCompleted, t.Type)
		}
		slog.Info("task completed", "id", t.ID, "type", t.Type, "output_format", out.Format)
	}
	e.touch(t)

	if e.metrics != nil {
		e.metrics.ExecuteDuration.Record(ctx, e.now().Sub(start).Seconds(),
			metric.WithAttributes(attribute.String("task.type", string(t.Type))))
	}

	if err := e.store.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// run performs translation, the upstream call and format negotiation.
func (e *Executor) run(ctx context.Context, t *task.Task, requested task.OutputFormat) (*task.Output, error) {
	tr, ok := e.registry.Lookup(t.Type)
	if !ok {
		return nil, domain.Validationf("unsupported task type %q", t.Type)
	}

	req, err := tr.BuildRequest(t.Input)
	if err != nil {
		return nil, err
	}

	raw, err := e.upstream.Get(ctx, req.Endpoint, req.Params)
	if err != nil {
		return nil, err
	}

	return e.negotiator.Negotiate(t.Type, requested, raw)
}

// touch advances updated_at, keeping it monotonically non-decreasing.
func (e *Executor) touch(t *task.Task) {
	now := e.now()
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}

func (e *Executor) count(ctx context.Context, c metric.Int64Counter, tt task.Type) {
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("task.type", string(tt))))
}
