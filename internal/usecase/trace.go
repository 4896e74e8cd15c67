package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("goals-api/internal/usecase")

// startUsecaseSpan only opens a child span when the caller is already traced,
// so background work and tests stay span free.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func leagueAttrs(key, season string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("goals.league", key),
		attribute.String("goals.season", season),
	}
}
