package highlightly

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goals-api/internal/domain/highlight"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/platform/resilience"
	"github.com/riskibarqy/goals-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL       = "https://soccer.highlightly.net"
	defaultTimeout       = 15 * time.Second
	defaultMatchLimit    = 20
	maxResponseBodyBytes = 4 << 20
)

var errHighlightlyTransient = crerr.New("highlightly transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client searches the highlights provider. Calls are single attempts behind
// a circuit breaker that opens on transport errors and 5xx/429 responses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger = logger.Named("highlightly")

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		logger:     logger,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker,
			resilience.WithStateChange(func(from, to resilience.CircuitState) {
				logger.Warn("highlightly circuit breaker state changed", "from", from, "to", to)
			}),
		),
	}
}

func (c *Client) FetchHighlights(ctx context.Context, homeTeam, awayTeam string, date *string) ([]highlight.Highlight, error) {
	query := url.Values{}
	query.Set("homeTeamName", strings.TrimSpace(homeTeam))
	query.Set("awayTeamName", strings.TrimSpace(awayTeam))
	query.Set("limit", strconv.Itoa(defaultMatchLimit))
	if date != nil && strings.TrimSpace(*date) != "" {
		query.Set("date", strings.TrimSpace(*date))
	}

	var envelope highlightsEnvelope
	if err := c.doJSON(ctx, "/highlights", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch highlights home=%s away=%s: %w", homeTeam, awayTeam, err)
	}
	return envelope.toDomain(), nil
}

func (c *Client) FetchLeagueHighlights(ctx context.Context, leagueName string, date *string, limit int) (highlight.Page, error) {
	query := url.Values{}
	query.Set("leagueName", strings.TrimSpace(leagueName))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if date != nil && strings.TrimSpace(*date) != "" {
		query.Set("date", strings.TrimSpace(*date))
	}

	var envelope highlightsEnvelope
	if err := c.doJSON(ctx, "/highlights", query, &envelope); err != nil {
		return highlight.Page{}, fmt.Errorf("fetch league highlights league=%s: %w", leagueName, err)
	}

	return highlight.Page{
		Data: envelope.toDomain(),
		Pagination: highlight.Pagination{
			TotalCount: envelope.Pagination.TotalCount,
			Offset:     envelope.Pagination.Offset,
			Limit:      envelope.Pagination.Limit,
		},
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	call := func() error {
		body, err := c.execute(ctx, fullURL)
		raw = body
		return err
	}

	if err := c.breaker.Execute(call, isHighlightlyCircuitFailure); err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "highlightly circuit breaker rejected request", "state", c.breaker.State())
		}
		return fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %w", usecase.ErrSourceUnavailable, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "highlightly request failed", "path", req.URL.Path, "error", err)
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errHighlightlyTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBodyBytes)); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errHighlightlyTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
		c.logger.WarnContext(ctx, "highlightly returned non-success status", "path", req.URL.Path, "status", resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Mark(statusErr, errHighlightlyTransient)
		}
		return nil, statusErr
	}

	return append([]byte(nil), buf.B...), nil
}

func isHighlightlyCircuitFailure(err error) bool {
	return crerr.Is(err, errHighlightlyTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const max = 256
	value := strings.TrimSpace(string(raw))
	if len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
