package usecase

import (
	"context"
	"errors"
	"runtime/pprof"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/highlight"
	"github.com/riskibarqy/goals-api/internal/domain/league"
	usecasemock "github.com/riskibarqy/goals-api/internal/mocks/usecase"
	"github.com/riskibarqy/goals-api/internal/observability"
	"github.com/riskibarqy/goals-api/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()

	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func newTestGoalService(t *testing.T, results ResultsSource, highlights HighlightsSource, store Cache) *GoalService {
	t.Helper()

	noSleep := func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	fetcher := NewLeagueGoalsFetcher(results, 0, testLogger()).WithSleeper(noSleep)
	var enricher *HighlightEnricher
	if highlights != nil {
		enricher = NewHighlightEnricher(highlights, 0, testLogger()).WithSleeper(noSleep)
	}

	return NewGoalService(
		newTestLeagueService(),
		fetcher,
		enricher,
		store,
		newTestPool(t),
		GoalServiceConfig{DefaultSeason: "2024", OrchestrationTimeout: time.Minute},
		testLogger(),
	)
}

func seedFake(results *fakeResults) {
	results.schedules["EPL"] = []goal.MatchInfo{testMatch("101", "Arsenal", "Wolves")}
	results.shots["101"] = goal.MatchShots{Home: []goal.RawShot{homeGoal("g101", "Saka", "25")}}
	results.schedules["Bundesliga"] = []goal.MatchInfo{testMatch("201", "Bayern Munich", "Wolfsburg")}
	results.shots["201"] = goal.MatchShots{Home: []goal.RawShot{homeGoal("g201", "Kane", "9"), homeGoal("g202", "Musiala", "60")}}
	results.failures["La_liga"] = errors.New("source unavailable: status=502")
}

func TestGoalService_FetchAllLeagues_PreservesOrderAndIsolatesFailures(t *testing.T) {
	t.Parallel()

	results := newFakeResults()
	seedFake(results)
	svc := newTestGoalService(t, results, nil, nil)

	got, err := svc.FetchAllLeagues(context.Background(), "2024", []string{"bundesliga", "la_liga", "epl"})
	require.NoError(t, err)
	require.Len(t, got, 3)

	if got[0].LeagueKey != league.KeyBundesliga || got[1].LeagueKey != league.KeyLaLiga || got[2].LeagueKey != league.KeyEPL {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].LeagueKey, got[1].LeagueKey, got[2].LeagueKey)
	}
	if got[0].Error != nil || len(got[0].Goals) != 2 {
		t.Fatalf("expected bundesliga goals, got %+v", got[0])
	}
	if got[1].Error == nil || len(got[1].Goals) != 0 {
		t.Fatalf("expected la liga error, got %+v", got[1])
	}
	if got[2].Error != nil || len(got[2].Goals) != 1 {
		t.Fatalf("expected epl goals, got %+v", got[2])
	}
}

func TestGoalService_FetchAllLeagues_DefaultsToEveryLeague(t *testing.T) {
	t.Parallel()

	results := newFakeResults()
	seedFake(results)
	svc := newTestGoalService(t, results, nil, nil)

	got, err := svc.FetchAllLeagues(context.Background(), "", nil)
	require.NoError(t, err)

	want := []string{league.KeyEPL, league.KeyLaLiga, league.KeyBundesliga, league.KeySerieA, league.KeyLigue1}
	require.Len(t, got, len(want))
	for i, key := range want {
		if got[i].LeagueKey != key {
			t.Fatalf("position %d: got %s want %s", i, got[i].LeagueKey, key)
		}
	}
}

func TestGoalService_FetchAllLeagues_RejectsUnknownLeague(t *testing.T) {
	t.Parallel()

	results := newFakeResults()
	svc := newTestGoalService(t, results, nil, nil)

	_, err := svc.FetchAllLeagues(context.Background(), "2024", []string{"epl", "eredivisie"})
	if !errors.Is(err, ErrUnknownLeague) {
		t.Fatalf("expected ErrUnknownLeague, got %v", err)
	}
	var unknown *UnknownLeagueError
	if !errors.As(err, &unknown) || len(unknown.Available) != 5 || unknown.Invalid[0] != "eredivisie" {
		t.Fatalf("expected invalid and available leagues on the error, got %+v", unknown)
	}
	if results.scheduleCalls("EPL") != 0 {
		t.Fatalf("expected no upstream call before validation passes")
	}
}

func TestFanOut_PanicBecomesLeagueError(t *testing.T) {
	t.Parallel()

	leagues := []league.League{
		{Key: league.KeyEPL, Name: "Premier League"},
		{Key: league.KeySerieA, Name: "Serie A"},
	}
	got := fanOut(context.Background(), newTestPool(t), leagues, func(_ context.Context, _ int, lg league.League) goal.LeagueFetchResult {
		if lg.Key == league.KeySerieA {
			panic("boom")
		}
		return goal.LeagueFetchResult{LeagueKey: lg.Key, Goals: []goal.Goal{}}
	})

	require.Len(t, got, 2)
	if got[0].Error != nil {
		t.Fatalf("expected epl to succeed, got %s", *got[0].Error)
	}
	if got[1].Error == nil || got[1].LeagueKey != league.KeySerieA {
		t.Fatalf("expected serie a panic to be captured, got %+v", got[1])
	}
}

func TestFanOut_LabelsTasksWithLeague(t *testing.T) {
	t.Parallel()

	leagues := []league.League{{Key: league.KeyEPL}, {Key: league.KeyLigue1}}
	got := fanOut(context.Background(), newTestPool(t), leagues, func(ctx context.Context, _ int, lg league.League) goal.LeagueFetchResult {
		label, _ := pprof.Label(ctx, observability.LeagueProfileLabel)
		return goal.LeagueFetchResult{LeagueKey: label}
	})

	require.Len(t, got, 2)
	if got[0].LeagueKey != league.KeyEPL || got[1].LeagueKey != league.KeyLigue1 {
		t.Fatalf("expected tasks to carry their league label, got %q and %q", got[0].LeagueKey, got[1].LeagueKey)
	}
}

func TestGoalService_Goals_AggregatesAndCaches(t *testing.T) {
	t.Parallel()

	results := newFakeResults()
	seedFake(results)
	store := cache.NewStore(time.Hour)
	svc := newTestGoalService(t, results, nil, store)

	first, err := svc.Goals(context.Background(), GoalsQuery{Season: "2024", Leagues: []string{"epl", "bundesliga", "laliga"}})
	require.NoError(t, err)

	if first.Season != "2024-2025" || first.TotalGoals != 3 || len(first.Goals) != 3 {
		t.Fatalf("unexpected report: season=%s total=%d", first.Season, first.TotalGoals)
	}
	if first.Cached {
		t.Fatalf("expected first report to be uncached")
	}
	if stats := first.LeagueStats[league.KeyLaLiga]; stats.Error == nil {
		t.Fatalf("expected la liga stats to carry the error")
	}
	if stats := first.LeagueStats[league.KeyBundesliga]; stats.TotalGoals != 2 || stats.TotalMatches != 1 {
		t.Fatalf("unexpected bundesliga stats: %+v", stats)
	}
	require.Equal(t, []string{league.KeyEPL, league.KeyBundesliga, league.KeyLaLiga}, first.Leagues)

	if _, ok := store.Get(context.Background(), GoalsCacheKey("2024", league.KeyEPL, DataTypeGoals)); !ok {
		t.Fatalf("expected epl goals to be cached")
	}
	if _, ok := store.Get(context.Background(), GoalsCacheKey("2024", league.KeyLaLiga, DataTypeGoals)); ok {
		t.Fatalf("did not expect a failed league to be cached")
	}

	second, err := svc.Goals(context.Background(), GoalsQuery{Season: "2024", Leagues: []string{"epl", "bundesliga"}})
	require.NoError(t, err)
	if !second.Cached || second.TotalGoals != 3 {
		t.Fatalf("expected cached second report, got cached=%v total=%d", second.Cached, second.TotalGoals)
	}
	if results.scheduleCalls("EPL") != 1 || results.scheduleCalls("Bundesliga") != 1 {
		t.Fatalf("expected cached leagues not to hit the source again")
	}

	_, err = svc.Goals(context.Background(), GoalsQuery{Season: "2024", Leagues: []string{"epl"}, Refresh: true})
	require.NoError(t, err)
	if results.scheduleCalls("EPL") != 2 {
		t.Fatalf("expected refresh to bypass the cache")
	}
}

func TestGoalService_LeagueGoals_WithHighlights(t *testing.T) {
	t.Parallel()

	results := newFakeResults()
	seedFake(results)
	highlights := usecasemock.NewHighlightsSource(t)
	store := cache.NewStore(time.Hour)
	svc := newTestGoalService(t, results, highlights, store)

	highlights.On("FetchHighlights", mock.Anything, "Arsenal", "Wolves", mock.Anything).
		Return([]highlight.Highlight{{ID: "x", Title: "Saka curls it in"}}, nil).
		Once()

	report, err := svc.LeagueGoals(context.Background(), LeagueGoalsQuery{League: "premier_league", Highlights: true})
	require.NoError(t, err)
	require.Len(t, report.Goals, 1)

	if report.Season != "2024-2025" || report.LeagueKey != league.KeyEPL {
		t.Fatalf("unexpected report identity: %+v", report)
	}
	if len(report.Goals[0].GoalHighlights) != 1 || report.Goals[0].GoalHighlights[0].Relevance != highlight.RelevancePlayer {
		t.Fatalf("expected enriched goal, got %+v", report.Goals[0].GoalHighlights)
	}
	for _, dataType := range []string{DataTypeGoals, DataTypeGoalsHighlights} {
		if _, ok := store.Get(context.Background(), GoalsCacheKey("2024", league.KeyEPL, dataType)); !ok {
			t.Fatalf("expected %s entry to be cached", dataType)
		}
	}

	again, err := svc.LeagueGoals(context.Background(), LeagueGoalsQuery{League: "epl", Highlights: true})
	require.NoError(t, err)
	if !again.Cached {
		t.Fatalf("expected second enriched request to be served from cache")
	}
	if report.HighlightsUnavailable || again.HighlightsUnavailable {
		t.Fatalf("did not expect highlights to be reported unavailable with a provider configured")
	}
}

func TestGoalService_HighlightsRequestedWithoutProvider(t *testing.T) {
	t.Parallel()

	results := newFakeResults()
	seedFake(results)
	store := cache.NewStore(time.Hour)
	svc := newTestGoalService(t, results, nil, store)

	report, err := svc.LeagueGoals(context.Background(), LeagueGoalsQuery{League: "epl", Highlights: true})
	require.NoError(t, err)
	require.Len(t, report.Goals, 1)
	if !report.HighlightsUnavailable {
		t.Fatalf("expected league report to flag missing highlights provider")
	}
	if len(report.Goals[0].GoalHighlights) != 0 {
		t.Fatalf("did not expect goal highlights without a provider, got %+v", report.Goals[0].GoalHighlights)
	}
	if _, ok := store.Get(context.Background(), GoalsCacheKey("2024", league.KeyEPL, DataTypeGoalsHighlights)); ok {
		t.Fatalf("did not expect an enriched cache entry without a provider")
	}

	aggregated, err := svc.Goals(context.Background(), GoalsQuery{Season: "2024", Leagues: []string{"epl"}, Highlights: true})
	require.NoError(t, err)
	if !aggregated.HighlightsUnavailable {
		t.Fatalf("expected aggregated report to flag missing highlights provider")
	}

	plain, err := svc.Goals(context.Background(), GoalsQuery{Season: "2024", Leagues: []string{"epl"}})
	require.NoError(t, err)
	if plain.HighlightsUnavailable {
		t.Fatalf("did not expect the flag when highlights were not requested")
	}
}

// gatedResults holds every schedule fetch until release is closed.
type gatedResults struct {
	*fakeResults
	started   chan struct{}
	release   chan struct{}
	startOnce sync.Once
}

func (g *gatedResults) FetchLeagueResults(ctx context.Context, leagueCode, season string) ([]goal.MatchInfo, error) {
	g.startOnce.Do(func() { close(g.started) })
	<-g.release
	return g.fakeResults.FetchLeagueResults(ctx, leagueCode, season)
}

func TestGoalService_LeagueGoals_CancelledCallerDoesNotDegradeConcurrentCaller(t *testing.T) {
	t.Parallel()

	fake := newFakeResults()
	seedFake(fake)
	results := &gatedResults{fakeResults: fake, started: make(chan struct{}), release: make(chan struct{})}
	store := cache.NewStore(time.Hour)
	svc := newTestGoalService(t, results, nil, store)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan LeagueGoalsReport, 1)
	go func() {
		report, _ := svc.LeagueGoals(firstCtx, LeagueGoalsQuery{Season: "2024", League: "epl"})
		firstDone <- report
	}()
	<-results.started

	secondDone := make(chan LeagueGoalsReport, 1)
	go func() {
		report, err := svc.LeagueGoals(context.Background(), LeagueGoalsQuery{Season: "2024", League: "epl"})
		require.NoError(t, err)
		secondDone <- report
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	if first := <-firstDone; first.Error == nil {
		t.Fatalf("expected the cancelled caller to see an error, got %+v", first)
	}

	close(results.release)
	second := <-secondDone
	if second.Error != nil {
		t.Fatalf("expected the live caller to get a complete result, got error %q", *second.Error)
	}
	if second.TotalGoals != 1 || second.TotalMatches != 1 {
		t.Fatalf("unexpected live result: goals=%d matches=%d", second.TotalGoals, second.TotalMatches)
	}
	if _, ok := store.Get(context.Background(), GoalsCacheKey("2024", league.KeyEPL, DataTypeGoals)); !ok {
		t.Fatalf("expected the shared load to be cached")
	}
	if got := results.scheduleCalls("EPL"); got != 1 {
		t.Fatalf("expected one shared schedule fetch, got %d", got)
	}
}

func TestGoalService_RejectsBadSeason(t *testing.T) {
	t.Parallel()

	svc := newTestGoalService(t, newFakeResults(), nil, nil)
	_, err := svc.LeagueGoals(context.Background(), LeagueGoalsQuery{League: "epl", Season: "24"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
