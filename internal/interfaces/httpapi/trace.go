package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("goals-api/internal/interfaces/httpapi")

// startHandlerSpan opens a handler span under the otelhttp server span.
// Filtered routes such as /healthz carry no parent and get none.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return apiTracer.Start(ctx, handlerSpanName(name),
		trace.WithAttributes(attribute.String("http.route", r.Pattern)),
	)
}

func handlerSpanName(name string) string {
	return "httpapi.Handler." + name
}
