package highlightly

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/platform/resilience"
	"github.com/riskibarqy/goals-api/internal/usecase"
)

const highlightsBody = `{
  "data": [
    {"id": 418721, "type": "VERIFIED", "title": "Zirkzee 87' winner", "description": "Manchester United 1-0 Fulham", "url": "https://youtu.be/abc", "embedUrl": "https://www.youtube.com/embed/abc", "source": "youtube"},
    {"id": "x-2", "type": "UNVERIFIED", "title": "Extended highlights", "description": "", "url": "https://example.test/2", "embedUrl": "", "source": "other"}
  ],
  "pagination": {"totalCount": 2, "offset": 0, "limit": 20}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		Token:          "secret-token",
		Timeout:        2 * time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchHighlights(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		if r.URL.Path != "/highlights" || q.Get("homeTeamName") != "Manchester United" || q.Get("awayTeamName") != "Fulham" || q.Get("date") != "2024-08-16" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(highlightsBody))
	}, resilience.DefaultCircuitBreakerConfig())

	date := "2024-08-16"
	got, err := client.FetchHighlights(context.Background(), "Manchester United", "Fulham", &date)
	if err != nil {
		t.Fatalf("fetch highlights: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(got))
	}
	if got[0].ID != "418721" || got[0].EmbedURL != "https://www.youtube.com/embed/abc" || got[0].Type != "VERIFIED" {
		t.Fatalf("unexpected first highlight: %+v", got[0])
	}
	if got[1].ID != "x-2" {
		t.Fatalf("expected string id passthrough, got %q", got[1].ID)
	}
}

func TestClient_FetchLeagueHighlights(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("leagueName") != "Premier League" || q.Get("limit") != "20" || q.Has("date") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(highlightsBody))
	}, resilience.DefaultCircuitBreakerConfig())

	page, err := client.FetchLeagueHighlights(context.Background(), "Premier League", nil, 20)
	if err != nil {
		t.Fatalf("fetch league highlights: %v", err)
	}
	if len(page.Data) != 2 || page.Pagination.TotalCount != 2 || page.Pagination.Limit != 20 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestClient_ClientErrorDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad team name"}`))
	}, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	for i := 0; i < 3; i++ {
		_, err := client.FetchHighlights(context.Background(), "A", "B", nil)
		if !errors.Is(err, usecase.ErrSourceUnavailable) {
			t.Fatalf("expected ErrSourceUnavailable, got %v", err)
		}
	}
	if calls.Load() != 3 {
		t.Fatalf("expected every call to reach the server, got %d", calls.Load())
	}
}

func TestClient_ServerErrorsOpenBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	for i := 0; i < 4; i++ {
		_, err := client.FetchHighlights(context.Background(), "A", "B", nil)
		if !errors.Is(err, usecase.ErrSourceUnavailable) {
			t.Fatalf("call %d: expected ErrSourceUnavailable, got %v", i, err)
		}
		if i >= 2 && !errors.Is(err, resilience.ErrCircuitOpen) {
			t.Fatalf("call %d: expected open circuit, got %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected the breaker to stop calls after 2 failures, got %d", calls.Load())
	}
}

func TestClient_MalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, resilience.DefaultCircuitBreakerConfig())

	if _, err := client.FetchLeagueHighlights(context.Background(), "Serie A", nil, 10); !errors.Is(err, usecase.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
