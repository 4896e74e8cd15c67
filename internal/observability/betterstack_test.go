package observability

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/goals-api/internal/config"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

type betterStackRecorder struct {
	mu       sync.Mutex
	requests int
	lines    []map[string]any
	auth     string
}

func (r *betterStackRecorder) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		var batch []map[string]any
		if err := sonic.Unmarshal(body, &batch); err != nil {
			t.Errorf("betterstack payload is not a JSON array: %v (%s)", err, body)
		}

		r.mu.Lock()
		r.requests++
		r.lines = append(r.lines, batch...)
		r.auth = req.Header.Get("Authorization")
		r.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	})
}

func betterStackConfig(endpoint string) config.Config {
	return config.Config{
		LogLevel:            logging.LevelInfo,
		BetterStackEnabled:  true,
		BetterStackEndpoint: endpoint,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelWarn,
	}
}

func TestBuildLogger_ShipsBatchesToBetterStack(t *testing.T) {
	t.Parallel()

	rec := &betterStackRecorder{}
	server := httptest.NewServer(rec.handler(t))
	defer server.Close()

	var stdout bytes.Buffer
	logger, shutdown, err := BuildLogger(betterStackConfig(server.URL), &stdout)
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	logger.Info("info stays local")
	logger.Warn("fetch league failed", "league", "epl")
	logger.Error("schedule unavailable", "league", "laliga")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.requests != 1 {
		t.Fatalf("expected one batched request, got %d", rec.requests)
	}
	if len(rec.lines) != 2 {
		t.Fatalf("expected warn and error lines only, got %d", len(rec.lines))
	}
	if rec.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", rec.auth)
	}
	if got := bytes.Count(stdout.Bytes(), []byte("\n")); got != 3 {
		t.Fatalf("expected all 3 lines on stdout, got %d", got)
	}
}

func TestBuildLogger_BetterStackRequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, _, err := BuildLogger(betterStackConfig("  "), io.Discard); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	t.Parallel()

	if got := normalizeBetterStackEndpoint("in.logs.betterstack.com"); got != "https://in.logs.betterstack.com" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
	if got := normalizeBetterStackEndpoint("http://localhost:9000"); got != "http://localhost:9000" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
}
