package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/league"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

const (
	DataTypeGoals           = "goals"
	DataTypeGoalsHighlights = "goals_highlights"

	DefaultOrchestrationTimeout = 15 * time.Minute
)

type GoalServiceConfig struct {
	DefaultSeason        string
	OrchestrationTimeout time.Duration
}

type GoalsQuery struct {
	Season     string
	Leagues    []string
	Refresh    bool
	Highlights bool
}

type LeagueGoalsQuery struct {
	Season     string
	League     string
	Refresh    bool
	Highlights bool
}

type LeagueStats struct {
	TotalGoals   int     `json:"totalGoals"`
	TotalMatches int     `json:"totalMatches"`
	Error        *string `json:"error,omitempty"`
}

// GoalsReport is the aggregated multi-league response.
type GoalsReport struct {
	Season      string                 `json:"season"`
	TotalGoals  int                    `json:"totalGoals"`
	LeagueStats map[string]LeagueStats `json:"leagueStats"`
	Leagues     []string               `json:"leagues"`
	Goals       []goal.Goal            `json:"goals"`
	Cached      bool                   `json:"cached"`

	// HighlightsUnavailable is set when highlights were requested but no
	// provider is configured.
	HighlightsUnavailable bool `json:"highlightsUnavailable,omitempty"`
}

type LeagueGoalsReport struct {
	Season string `json:"season"`
	goal.LeagueFetchResult
	Cached                bool `json:"cached"`
	HighlightsUnavailable bool `json:"highlightsUnavailable,omitempty"`
}

type GoalService struct {
	leagues  *LeagueService
	fetcher  *LeagueGoalsFetcher
	enricher *HighlightEnricher
	cache    Cache
	pool     *ants.Pool
	cfg      GoalServiceConfig
	logger   *logging.Logger
}

func NewGoalService(
	leagues *LeagueService,
	fetcher *LeagueGoalsFetcher,
	enricher *HighlightEnricher,
	cache Cache,
	pool *ants.Pool,
	cfg GoalServiceConfig,
	logger *logging.Logger,
) *GoalService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.OrchestrationTimeout <= 0 {
		cfg.OrchestrationTimeout = DefaultOrchestrationTimeout
	}
	if cfg.DefaultSeason == "" {
		cfg.DefaultSeason = DefaultSeason
	}

	return &GoalService{
		leagues:  leagues,
		fetcher:  fetcher,
		enricher: enricher,
		cache:    cache,
		pool:     pool,
		cfg:      cfg,
		logger:   logger,
	}
}

// FetchAllLeagues fetches the requested leagues concurrently without the
// cache and returns one result per key in input order. An empty key list
// means every league.
func (s *GoalService) FetchAllLeagues(ctx context.Context, season string, keys []string) ([]goal.LeagueFetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalService.FetchAllLeagues")
	defer span.End()

	season, err := NormalizeSeason(season, s.cfg.DefaultSeason)
	if err != nil {
		return nil, err
	}
	leagues, err := s.leagues.ResolveMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OrchestrationTimeout)
	defer cancel()

	return fanOut(ctx, s.pool, leagues, func(ctx context.Context, _ int, lg league.League) goal.LeagueFetchResult {
		return s.fetcher.FetchLeagueGoals(ctx, lg, season)
	}), nil
}

// Goals serves the aggregated response, reading and filling the per-league
// cache entries.
func (s *GoalService) Goals(ctx context.Context, q GoalsQuery) (GoalsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalService.Goals")
	defer span.End()

	season, err := NormalizeSeason(q.Season, s.cfg.DefaultSeason)
	if err != nil {
		return GoalsReport{}, err
	}
	leagues, err := s.leagues.ResolveMany(ctx, q.Leagues)
	if err != nil {
		return GoalsReport{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OrchestrationTimeout)
	defer cancel()

	hits := make([]bool, len(leagues))
	results := fanOut(ctx, s.pool, leagues, func(ctx context.Context, idx int, lg league.League) goal.LeagueFetchResult {
		result, hit := s.leagueGoals(ctx, lg, season, q.Refresh, q.Highlights)
		hits[idx] = hit
		return result
	})

	report := GoalsReport{
		Season:      SeasonLabel(season),
		LeagueStats: make(map[string]LeagueStats, len(results)),
		Leagues:     make([]string, 0, len(results)),
		Goals:       []goal.Goal{},
		Cached:      len(results) > 0,

		HighlightsUnavailable: q.Highlights && !s.enricher.Enabled(),
	}
	seen := make(map[string]struct{}, len(results))
	for i, result := range results {
		report.Cached = report.Cached && hits[i]
		if _, dup := seen[result.LeagueKey]; dup {
			continue
		}
		seen[result.LeagueKey] = struct{}{}

		report.Leagues = append(report.Leagues, result.LeagueKey)
		report.LeagueStats[result.LeagueKey] = LeagueStats{
			TotalGoals:   result.TotalGoals,
			TotalMatches: result.TotalMatches,
			Error:        result.Error,
		}
		report.Goals = append(report.Goals, result.Goals...)
	}
	report.TotalGoals = len(report.Goals)

	return report, nil
}

// LeagueGoals serves a single league through the cache.
func (s *GoalService) LeagueGoals(ctx context.Context, q LeagueGoalsQuery) (LeagueGoalsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GoalService.LeagueGoals")
	defer span.End()

	season, err := NormalizeSeason(q.Season, s.cfg.DefaultSeason)
	if err != nil {
		return LeagueGoalsReport{}, err
	}
	lg, err := s.leagues.Resolve(ctx, q.League)
	if err != nil {
		return LeagueGoalsReport{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OrchestrationTimeout)
	defer cancel()

	result, hit := s.leagueGoals(ctx, lg, season, q.Refresh, q.Highlights)
	return LeagueGoalsReport{
		Season:            SeasonLabel(season),
		LeagueFetchResult: result,
		Cached:            hit,

		HighlightsUnavailable: q.Highlights && !s.enricher.Enabled(),
	}, nil
}

func GoalsCacheKey(season, leagueKey, dataType string) string {
	return fmt.Sprintf("%s_%s_%s", season, leagueKey, dataType)
}

// degradedResult carries a result with its error field set through the
// cache loader so it is returned to every waiter but never stored.
type degradedResult struct {
	result goal.LeagueFetchResult
}

func (d *degradedResult) Error() string {
	if d.result.Error == nil {
		return "degraded league result"
	}
	return *d.result.Error
}

func (s *GoalService) leagueGoals(ctx context.Context, lg league.League, season string, refresh, withHighlights bool) (goal.LeagueFetchResult, bool) {
	if withHighlights && s.enricher.Enabled() {
		key := GoalsCacheKey(season, lg.Key, DataTypeGoalsHighlights)
		return s.cachedResult(ctx, lg, key, refresh, func(ctx context.Context) goal.LeagueFetchResult {
			base, _ := s.leagueGoals(ctx, lg, season, refresh, false)
			if base.Error == nil {
				base.Goals = s.enricher.Enrich(ctx, base.Goals)
			}
			return base
		})
	}

	key := GoalsCacheKey(season, lg.Key, DataTypeGoals)
	return s.cachedResult(ctx, lg, key, refresh, func(ctx context.Context) goal.LeagueFetchResult {
		return s.fetcher.FetchLeagueGoals(ctx, lg, season)
	})
}

func (s *GoalService) cachedResult(
	ctx context.Context,
	lg league.League,
	key string,
	refresh bool,
	load func(context.Context) goal.LeagueFetchResult,
) (goal.LeagueFetchResult, bool) {
	loader := func(ctx context.Context) ([]byte, error) {
		result := load(ctx)
		if result.Error != nil {
			return nil, &degradedResult{result: result}
		}
		return sonic.Marshal(result)
	}

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
		var degraded *degradedResult
		if errors.As(err, &degraded) {
			return degraded.result, false
		}
		return failedLeague(lg, err), false
	}

	var result goal.LeagueFetchResult
	if err := sonic.Unmarshal(payload, &result); err != nil {
		s.logger.WarnContext(ctx, "decode cached league goals failed, dropping entry", "key", key, "error", err)
		if s.cache != nil {
			s.cache.Delete(ctx, key)
		}
		return failedLeague(lg, fmt.Errorf("decode cached league goals: %w", err)), false
	}
	if result.Goals == nil {
		result.Goals = []goal.Goal{}
	}
	return result, hit
}
