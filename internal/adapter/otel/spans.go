package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "poforge"

// StartProcessSpan starts a span covering one purchase order submission.
func StartProcessSpan(ctx context.Context, taskID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "process",
		trace.WithAttributes(
			attribute.String("task.id", taskID),
		),
	)
}

// StartCancelSpan starts a span covering a task cancellation.
func StartCancelSpan(ctx context.Context, taskID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "cancel",
		trace.WithAttributes(
			attribute.String("task.id", taskID),
		),
	)
}
