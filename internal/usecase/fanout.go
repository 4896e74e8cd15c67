package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/league"
	"github.com/riskibarqy/goals-api/internal/observability"
	"github.com/sourcegraph/conc/panics"
)

type leagueTask func(ctx context.Context, idx int, lg league.League) goal.LeagueFetchResult

// fanOut runs task for every league on the shared pool and waits for all of
// them. results[i] always belongs to leagues[i]. A panicking or rejected
// task becomes that league's error.
func fanOut(ctx context.Context, pool *ants.Pool, leagues []league.League, task leagueTask) []goal.LeagueFetchResult {
	results := make([]goal.LeagueFetchResult, len(leagues))
	if len(leagues) == 0 {
		return results
	}

	var workers sync.WaitGroup
	for i, lg := range leagues {
		i, lg := i, lg
		run := func() {
			defer workers.Done()

			var catcher panics.Catcher
			catcher.Try(func() {
				observability.ProfileLeague(ctx, lg.Key, func(ctx context.Context) {
					results[i] = task(ctx, i, lg)
				})
			})
			if recovered := catcher.Recovered(); recovered != nil {
				results[i] = failedLeague(lg, fmt.Errorf("league task panicked: %v", recovered.Value))
			}
		}

		workers.Add(1)
		if pool == nil {
			go run()
			continue
		}
		if err := pool.Submit(run); err != nil {
			workers.Done()
			results[i] = failedLeague(lg, fmt.Errorf("submit league task: %w", err))
		}
	}

	workers.Wait()
	return results
}

func failedLeague(lg league.League, err error) goal.LeagueFetchResult {
	result := goal.LeagueFetchResult{
		League:    lg.Name,
		LeagueKey: lg.Key,
		Goals:     []goal.Goal{},
	}
	result.SetError(err)
	return result
}
