package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "mapforge"

// Metrics holds all MapForge metric instruments.
type Metrics struct {
	TasksCreated    metric.Int64Counter
	ExecutesStarted metric.Int64Counter
	TasksCompleted  metric.Int64Counter
	TasksFailed     metric.Int64Counter
	ExecuteDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TasksCreated, err = meter.Int64Counter("mapforge.tasks.created",
		metric.WithDescription("Number of tasks created"))
	if err != nil {
		return nil, err
	}

	m.ExecutesStarted, err = meter.Int64Counter("mapforge.executes.started",
		metric.WithDescription("Number of task executions started"))
	if err != nil {
		return nil, err
	}

	m.TasksCompleted, err = meter.Int64Counter("mapforge.tasks.completed",
		metric.WithDescription("Number of task executions that completed"))
	if err != nil {
		return nil, err
	}

	m.TasksFailed, err = meter.Int64Counter("mapforge.tasks.failed",
		metric.WithDescription("Number of task executions that failed"))
	if err != nil {
		return nil, err
	}

	m.ExecuteDuration, err = meter.Float64Histogram("mapforge.execute.duration_seconds",
		metric.WithDescription("Task execution duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
