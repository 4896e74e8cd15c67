package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipOTelLog(t *testing.T) {
	if !shouldSkipOTelLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check access log to be skipped")
	}
	if shouldSkipOTelLog("http request", map[string]any{"path": "/api/goals"}) {
		t.Fatalf("did not expect api access log to be skipped")
	}
	if shouldSkipOTelLog("fetch league failed", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non-access log to be skipped")
	}
}

func TestBuildOTelLogAttributes_SortedFromZapFields(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	zap.String("league", "epl").AddTo(enc)
	zap.Int("matches", 38).AddTo(enc)
	zap.Any("payload", nil).AddTo(enc)

	attrs := buildOTelLogAttributes(enc.Fields)
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "league" || attrs[0].Value.AsString() != "epl" {
		t.Fatalf("unexpected league attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "matches" || attrs[1].Value.AsInt64() != 38 {
		t.Fatalf("unexpected matches attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"goals": 11,
		"xg":    9.4,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestOTelLogCore_WithKeepsParentFields(t *testing.T) {
	core := newOTelLogCore("test", zapcore.InfoLevel)
	child := core.With([]zapcore.Field{zap.String("component", "understat")})

	if len(core.(*otelLogCore).fields) != 0 {
		t.Fatalf("expected parent core to stay unchanged")
	}
	if got := child.(*otelLogCore).fields; len(got) != 1 || got[0].Key != "component" {
		t.Fatalf("unexpected child fields: %+v", got)
	}
	if core.Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be disabled at info level")
	}
}
