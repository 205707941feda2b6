package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "mapforge"

// StartExecuteSpan starts a span for one task execution.
func StartExecuteSpan(ctx context.Context, taskID, taskType string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "execute",
		trace.WithAttributes(
			attribute.String("task.id", taskID),
			attribute.String("task.type", taskType),
		),
	)
}
