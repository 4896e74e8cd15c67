package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

type countingSleeper struct {
	calls atomic.Int32
}

func (s *countingSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	s.calls.Add(1)
	return ctx.Err()
}

func testLogger() *logging.Logger {
	return logging.NewNop()
}

func newTestLeagueService() *LeagueService {
	return NewLeagueService(memory.NewLeagueRepository(memory.SeedLeagues()))
}

func testMatch(id, home, away string) goal.MatchInfo {
	return goal.MatchInfo{
		ID:       id,
		HomeTeam: home,
		AwayTeam: away,
		Datetime: "2024-08-17 14:00:00",
		IsResult: true,
	}
}

func homeGoal(id, player, minute string) goal.RawShot {
	return goal.RawShot{
		ID:       goal.RawValue(id),
		Minute:   goal.RawValue(minute),
		Result:   goal.ResultGoal,
		X:        "0.9",
		Y:        "0.5",
		XG:       "0.3",
		Player:   player,
		Side:     goal.SideHome,
		ShotType: "RightFoot",
	}
}

// fakeResults is a hand-rolled ResultsSource for concurrent fan-out tests,
// where per-call mock expectations get noisy.
type fakeResults struct {
	mu        sync.Mutex
	schedules map[string][]goal.MatchInfo
	failures  map[string]error
	shots     map[string]goal.MatchShots
	calls     map[string]int
}

func newFakeResults() *fakeResults {
	return &fakeResults{
		schedules: make(map[string][]goal.MatchInfo),
		failures:  make(map[string]error),
		shots:     make(map[string]goal.MatchShots),
		calls:     make(map[string]int),
	}
}

func (f *fakeResults) FetchLeagueResults(_ context.Context, leagueCode, _ string) ([]goal.MatchInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[leagueCode]++
	if err := f.failures[leagueCode]; err != nil {
		return nil, err
	}
	return f.schedules[leagueCode], nil
}

func (f *fakeResults) FetchMatchShots(_ context.Context, matchID string) (goal.MatchShots, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.shots[matchID], nil
}

func (f *fakeResults) scheduleCalls(leagueCode string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[leagueCode]
}
