package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/goals-api/internal/domain/highlight"
	"github.com/riskibarqy/goals-api/internal/domain/league"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const (
	DefaultHighlightsLimit = 40
	MaxHighlightsLimit     = 100

	latestHighlightsKey = "latest"
	dateLayout          = "2006-01-02"
)

type LeagueHighlightsQuery struct {
	League  string
	Date    string
	Limit   int
	Refresh bool
}

type AllHighlightsQuery struct {
	Leagues []string
	Date    string
	Limit   int
	Refresh bool
}

type LeagueHighlightsReport struct {
	League     string                `json:"league"`
	LeagueKey  string                `json:"leagueKey"`
	Date       *string               `json:"date"`
	Highlights []highlight.Highlight `json:"highlights"`
	Pagination highlight.Pagination  `json:"pagination"`
	Error      *string               `json:"error,omitempty"`
	Cached     bool                  `json:"cached"`
}

type HighlightService struct {
	leagues *LeagueService
	source  HighlightsSource
	cache   Cache
	logger  *logging.Logger
}

func NewHighlightService(leagues *LeagueService, source HighlightsSource, cache Cache, logger *logging.Logger) *HighlightService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HighlightService{
		leagues: leagues,
		source:  source,
		cache:   cache,
		logger:  logger,
	}
}

// MatchHighlights searches highlights for one fixture. Both team names are
// required; date is optional (YYYY-MM-DD).
func (s *HighlightService) MatchHighlights(ctx context.Context, homeTeam, awayTeam, date string) ([]highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.MatchHighlights")
	defer span.End()

	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return nil, fmt.Errorf("%w: both home and away team names are required", ErrInvalidInput)
	}
	datePtr, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: highlights provider is not configured", ErrDependencyUnavailable)
	}

	items, err := s.source.FetchHighlights(ctx, homeTeam, awayTeam, datePtr)
	if err != nil {
		return nil, fmt.Errorf("fetch match highlights: %w", err)
	}
	if items == nil {
		items = []highlight.Highlight{}
	}
	return items, nil
}

func (s *HighlightService) LeagueHighlights(ctx context.Context, q LeagueHighlightsQuery) (LeagueHighlightsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.LeagueHighlights")
	defer span.End()

	date, limit, err := normalizeHighlightsQuery(q.Date, q.Limit)
	if err != nil {
		return LeagueHighlightsReport{}, err
	}
	lg, err := s.leagues.Resolve(ctx, q.League)
	if err != nil {
		return LeagueHighlightsReport{}, err
	}
	if s.source == nil {
		return LeagueHighlightsReport{}, fmt.Errorf("%w: highlights provider is not configured", ErrDependencyUnavailable)
	}

	report, err := s.leagueHighlights(ctx, lg, date, limit, q.Refresh)
	if err != nil {
		return LeagueHighlightsReport{}, err
	}
	return report, nil
}

// AllLeagueHighlights queries every requested league concurrently. A
// failing league is reported through its Error field.
func (s *HighlightService) AllLeagueHighlights(ctx context.Context, q AllHighlightsQuery) ([]LeagueHighlightsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.AllLeagueHighlights")
	defer span.End()

	date, limit, err := normalizeHighlightsQuery(q.Date, q.Limit)
	if err != nil {
		return nil, err
	}
	leagues, err := s.leagues.ResolveMany(ctx, q.Leagues)
	if err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: highlights provider is not configured", ErrDependencyUnavailable)
	}

	mapper := iter.Mapper[league.League, LeagueHighlightsReport]{MaxGoroutines: len(leagues)}
	return mapper.Map(leagues, func(lg *league.League) LeagueHighlightsReport {
		report, err := s.leagueHighlights(ctx, *lg, date, limit, q.Refresh)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch league highlights failed", "league", lg.Key, "error", err)
			msg := err.Error()
			return LeagueHighlightsReport{
				League:     lg.Name,
				LeagueKey:  lg.Key,
				Date:       date,
				Highlights: []highlight.Highlight{},
				Error:      &msg,
			}
		}
		return report
	}), nil
}

func HighlightsCacheKey(date *string, leagueKey string) string {
	prefix := latestHighlightsKey
	if date != nil && *date != "" {
		prefix = *date
	}
	return fmt.Sprintf("%s_%s_highlights", prefix, leagueKey)
}

func (s *HighlightService) leagueHighlights(ctx context.Context, lg league.League, date *string, limit int, refresh bool) (LeagueHighlightsReport, error) {
	loader := func(ctx context.Context) ([]byte, error) {
		page, err := s.source.FetchLeagueHighlights(ctx, lg.Name, date, limit)
		if err != nil {
			return nil, fmt.Errorf("fetch league highlights: %w", err)
		}
		return sonic.Marshal(page)
	}

	key := HighlightsCacheKey(date, lg.Key)
	var (
		payload []byte
		hit     bool
		err     error
	)
	switch {
	case s.cache == nil:
		payload, err = loader(ctx)
	case refresh:
		payload, err = loader(ctx)
		if err == nil {
			s.cache.Set(ctx, key, payload)
		}
	default:
		payload, hit, err = s.cache.GetOrLoad(ctx, key, loader)
	}
	if err != nil {
		return LeagueHighlightsReport{}, err
	}

	var page highlight.Page
	if err := sonic.Unmarshal(payload, &page); err != nil {
		if s.cache != nil {
			s.cache.Delete(ctx, key)
		}
		return LeagueHighlightsReport{}, fmt.Errorf("decode cached highlights: %w", err)
	}
	if page.Data == nil {
		page.Data = []highlight.Highlight{}
	}

	return LeagueHighlightsReport{
		League:     lg.Name,
		LeagueKey:  lg.Key,
		Date:       date,
		Highlights: page.Data,
		Pagination: page.Pagination,
		Cached:     hit,
	}, nil
}

func normalizeHighlightsQuery(date string, limit int) (*string, int, error) {
	datePtr, err := normalizeDate(date)
	if err != nil {
		return nil, 0, err
	}
	if limit == 0 {
		limit = DefaultHighlightsLimit
	}
	if limit < 1 || limit > MaxHighlightsLimit {
		return nil, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxHighlightsLimit)
	}
	return datePtr, limit, nil
}

func normalizeDate(raw string) (*string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD, got %q", ErrInvalidInput, raw)
	}
	return &value, nil
}
