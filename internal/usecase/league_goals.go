package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/league"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/platform/resilience"
)

const DefaultMatchFetchDelay = 300 * time.Millisecond

// LeagueGoalsFetcher walks one league's finished matches one at a time and
// collects their goals.
type LeagueGoalsFetcher struct {
	source ResultsSource
	delay  time.Duration
	sleep  resilience.Sleeper
	logger *logging.Logger
}

func NewLeagueGoalsFetcher(source ResultsSource, delay time.Duration, logger *logging.Logger) *LeagueGoalsFetcher {
	if delay < 0 {
		delay = DefaultMatchFetchDelay
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueGoalsFetcher{
		source: source,
		delay:  delay,
		sleep:  resilience.Pause,
		logger: logger,
	}
}

// WithSleeper swaps the inter-match pause, mostly for tests.
func (f *LeagueGoalsFetcher) WithSleeper(sleep resilience.Sleeper) *LeagueGoalsFetcher {
	if sleep != nil {
		f.sleep = sleep
	}
	return f
}

// FetchLeagueGoals never returns an error: a schedule failure or an expired
// deadline is recorded on the result, and per-match failures are logged and
// skipped.
func (f *LeagueGoalsFetcher) FetchLeagueGoals(ctx context.Context, lg league.League, season string) goal.LeagueFetchResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueGoalsFetcher.FetchLeagueGoals", leagueAttrs(lg.Key, season)...)
	defer span.End()

	result := goal.LeagueFetchResult{
		League:    lg.Name,
		LeagueKey: lg.Key,
		Goals:     []goal.Goal{},
	}

	f.logger.InfoContext(ctx, "fetching league goals", "league", lg.Key, "season", season)

	matches, err := f.source.FetchLeagueResults(ctx, lg.Code, season)
	if err != nil {
		f.logger.WarnContext(ctx, "fetch league results failed", "league", lg.Key, "season", season, "error", err)
		result.SetError(err)
		return result
	}
	result.TotalMatches = len(matches)

	processed := 0
	for _, match := range matches {
		if match.ID == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			result.SetError(fmt.Errorf("stopped after %d of %d matches: %w", processed, len(matches), err))
			break
		}

		shots, err := f.source.FetchMatchShots(ctx, match.ID)
		if err != nil {
			f.logger.WarnContext(ctx, "fetch match shots failed, skipping match",
				"league", lg.Key,
				"match_id", match.ID,
				"error", err,
			)
			continue
		}

		goals, malformed := goal.Extract(match, shots)
		for _, extractErr := range malformed {
			f.logger.WarnContext(ctx, "skipping malformed shot", "league", lg.Key, "match_id", match.ID, "error", extractErr)
		}
		for i := range goals {
			goals[i].League = lg.Key
		}
		result.Goals = append(result.Goals, goals...)
		processed++

		if err := f.sleep(ctx, f.delay); err != nil {
			result.SetError(fmt.Errorf("stopped after %d of %d matches: %w", processed, len(matches), err))
			break
		}
	}

	result.TotalGoals = len(result.Goals)
	f.logger.InfoContext(ctx, "league goals collected",
		"league", lg.Key,
		"season", season,
		"matches", result.TotalMatches,
		"goals", result.TotalGoals,
	)
	return result
}
