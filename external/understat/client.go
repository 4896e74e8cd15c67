package understat

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"
)

const (
	defaultBaseURL       = "https://understat.com"
	defaultTimeout       = 20 * time.Second
	defaultMaxConcurrent = 4
	defaultUserAgent     = "Mozilla/5.0 (compatible; goals-api/1.0)"
	maxBodySize          = 8 << 20

	datesDataVar = "datesData"
	shotsDataVar = "shotsData"
)

var tracer = otel.Tracer("goals-api/external/understat")

type ClientConfig struct {
	HTTPClient    *fasthttp.Client
	BaseURL       string
	Timeout       time.Duration
	MaxConcurrent int
	UserAgent     string
	Logger        *logging.Logger
}

// Client scrapes league schedules and match shot maps from Understat pages.
// Every call is a single attempt; failures wrap usecase.ErrSourceUnavailable.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	userAgent  string
	slots      *semaphore.Weighted
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "goals-api",
			MaxConnsPerHost:     maxConcurrent,
			MaxConnWaitTimeout:  timeout,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		userAgent:  userAgent,
		slots:      semaphore.NewWeighted(int64(maxConcurrent)),
		logger:     logger.Named("understat"),
	}
}

// FetchLeagueResults returns the finished matches of a league season in the
// order the page lists them.
func (c *Client) FetchLeagueResults(ctx context.Context, leagueCode, season string) ([]goal.MatchInfo, error) {
	leagueCode = strings.TrimSpace(leagueCode)
	season = strings.TrimSpace(season)
	if leagueCode == "" || season == "" {
		return nil, fmt.Errorf("%w: league code and season are required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/league/%s/%s", url.PathEscape(leagueCode), url.PathEscape(season))
	raw, err := c.scrapeVar(ctx, "understat.FetchLeagueResults", path, datesDataVar)
	if err != nil {
		return nil, fmt.Errorf("fetch league results league=%s season=%s: %w", leagueCode, season, err)
	}

	var dates []datesEntry
	if err := sonic.Unmarshal(raw, &dates); err != nil {
		return nil, fmt.Errorf("%w: decode %s for league=%s: %w", usecase.ErrSourceUnavailable, datesDataVar, leagueCode, err)
	}

	out := make([]goal.MatchInfo, 0, len(dates))
	for _, entry := range dates {
		if !entry.IsResult {
			continue
		}
		out = append(out, entry.toMatchInfo())
	}
	return out, nil
}

func (c *Client) FetchMatchShots(ctx context.Context, matchID string) (goal.MatchShots, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return goal.MatchShots{}, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.scrapeVar(ctx, "understat.FetchMatchShots", "/match/"+url.PathEscape(matchID), shotsDataVar)
	if err != nil {
		return goal.MatchShots{}, fmt.Errorf("fetch match shots match_id=%s: %w", matchID, err)
	}

	var shots goal.MatchShots
	if err := sonic.Unmarshal(raw, &shots); err != nil {
		return goal.MatchShots{}, fmt.Errorf("%w: decode %s for match_id=%s: %w", usecase.ErrSourceUnavailable, shotsDataVar, matchID, err)
	}
	return shots, nil
}

func (c *Client) scrapeVar(ctx context.Context, spanName, path, varName string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(attribute.String("understat.path", path))

	body, err := c.get(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, err
	}

	raw, err := extractJSONVar(body, varName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract failed")
		return nil, fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, err)
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: wait for request slot: %w", usecase.ErrSourceUnavailable, err)
	}
	defer c.slots.Release(1)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, context.DeadlineExceeded)
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	fullURL := c.baseURL + path
	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		c.logger.WarnContext(ctx, "understat request failed", "url", fullURL, "error", err)
		return nil, fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, crerr.Wrapf(err, "GET %s", path))
	}

	status := resp.StatusCode()
	c.logger.DebugContext(ctx, "understat request completed",
		"url", fullURL,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, crerr.Newf("GET %s: status=%d", path, status))
	}

	// resp is recycled on return.
	return bytes.Clone(resp.Body()), nil
}

// extractJSONVar finds `var <name> = JSON.parse('...')` in the page scripts
// and returns the decoded JSON text.
func extractJSONVar(page []byte, name string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, crerr.Wrap(err, "parse html")
	}

	marker := "var " + name
	var (
		found   bool
		payload []byte
		decErr  error
	)
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, marker)
		if idx < 0 {
			return true
		}
		found = true
		payload, decErr = parseJSONCall(text[idx+len(marker):])
		return false
	})

	if !found {
		return nil, crerr.Newf("script variable %s not found", name)
	}
	if decErr != nil {
		return nil, crerr.Wrapf(decErr, "decode script variable %s", name)
	}
	return payload, nil
}

// parseJSONCall reads `= JSON.parse('<escaped>')` and unescapes the literal.
func parseJSONCall(rest string) ([]byte, error) {
	const open = "JSON.parse('"
	start := strings.Index(rest, open)
	if start < 0 {
		return nil, crerr.New("JSON.parse call not found")
	}
	rest = rest[start+len(open):]

	end := -1
	for i := 0; i < len(rest); i++ {
		if rest[i] == '\\' {
			i++
			continue
		}
		if rest[i] == '\'' {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, crerr.New("unterminated JSON.parse literal")
	}
	return unescapeJSLiteral(rest[:end])
}

// unescapeJSLiteral resolves \xNN and \' escapes. Other escapes are left
// for the JSON decoder.
func unescapeJSLiteral(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			out = append(out, ch)
			continue
		}

		next := s[i+1]
		switch next {
		case 'x':
			if i+3 >= len(s) {
				return nil, crerr.Newf("truncated hex escape at offset %d", i)
			}
			hi, okHi := hexValue(s[i+2])
			lo, okLo := hexValue(s[i+3])
			if !okHi || !okLo {
				return nil, crerr.Newf("invalid hex escape %q", s[i:i+4])
			}
			out = append(out, hi<<4|lo)
			i += 3
		case '\'':
			out = append(out, '\'')
			i++
		default:
			out = append(out, ch, next)
			i++
		}
	}
	return out, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
