package usecase

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStartUsecaseSpan_UntracedContextKeepsParent(t *testing.T) {
	ctx := context.Background()

	got, span := startUsecaseSpan(ctx, "usecase.GoalService.Goals", leagueAttrs("epl", "2024")...)
	defer span.End()

	if got != ctx {
		t.Fatalf("expected the context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected a non-recording span without a traced parent")
	}
	if trace.SpanFromContext(got).SpanContext().IsValid() {
		t.Fatalf("did not expect a span in the returned context")
	}
}

func TestLeagueAttrs(t *testing.T) {
	attrs := leagueAttrs("serie_a", "2023")
	if len(attrs) != 2 || attrs[0].Value.AsString() != "serie_a" || attrs[1].Value.AsString() != "2023" {
		t.Fatalf("unexpected attrs: %+v", attrs)
	}
}
