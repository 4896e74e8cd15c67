package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/highlight"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/platform/resilience"
)

const DefaultHighlightFetchDelay = 100 * time.Millisecond

// HighlightEnricher attaches match and goal highlights to extracted goals.
type HighlightEnricher struct {
	source HighlightsSource
	delay  time.Duration
	sleep  resilience.Sleeper
	logger *logging.Logger
}

func NewHighlightEnricher(source HighlightsSource, delay time.Duration, logger *logging.Logger) *HighlightEnricher {
	if delay < 0 {
		delay = DefaultHighlightFetchDelay
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &HighlightEnricher{
		source: source,
		delay:  delay,
		sleep:  resilience.Pause,
		logger: logger,
	}
}

func (e *HighlightEnricher) WithSleeper(sleep resilience.Sleeper) *HighlightEnricher {
	if sleep != nil {
		e.sleep = sleep
	}
	return e
}

func (e *HighlightEnricher) Enabled() bool {
	return e != nil && e.source != nil
}

// Enrich annotates goals in place and returns them. Highlights are fetched
// once per (home, away, date) group; a failed fetch is remembered as an
// empty list for the rest of the call.
func (e *HighlightEnricher) Enrich(ctx context.Context, goals []goal.Goal) []goal.Goal {
	if !e.Enabled() || len(goals) == 0 {
		return goals
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightEnricher.Enrich")
	defer span.End()

	order := make([]goal.MatchKey, 0)
	groups := make(map[goal.MatchKey][]int)
	for i := range goals {
		key := goals[i].MatchKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	fetched := make(map[goal.MatchKey][]highlight.Highlight, len(order))
	for _, key := range order {
		if !key.Complete() {
			continue
		}

		highlights, ok := fetched[key]
		if !ok {
			if ctx.Err() != nil {
				e.logger.WarnContext(ctx, "highlight enrichment stopped early", "remaining_groups", len(order)-len(fetched), "error", ctx.Err())
				break
			}
			highlights = e.fetch(ctx, key)
			fetched[key] = highlights
			_ = e.sleep(ctx, e.delay)
		}

		for _, idx := range groups[key] {
			g := &goals[idx]
			g.MatchHighlights = append([]highlight.Highlight{}, highlights...)
			g.GoalHighlights = highlight.ForGoal(g.Player, g.Minute, highlights)
		}
	}

	return goals
}

func (e *HighlightEnricher) fetch(ctx context.Context, key goal.MatchKey) []highlight.Highlight {
	var date *string
	if key.Date != "" {
		d := key.Date
		date = &d
	}

	highlights, err := e.source.FetchHighlights(ctx, key.Home, key.Away, date)
	if err != nil {
		e.logger.WarnContext(ctx, "fetch match highlights failed",
			"home_team", key.Home,
			"away_team", key.Away,
			"date", key.Date,
			"error", err,
		)
		return []highlight.Highlight{}
	}
	if highlights == nil {
		return []highlight.Highlight{}
	}
	return highlights
}
