package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/highlight"
	"github.com/riskibarqy/goals-api/internal/platform/cache"
)

// ResultsSource is the statistics provider. Implementations make a single
// attempt per call and wrap failures with ErrSourceUnavailable.
type ResultsSource interface {
	FetchLeagueResults(ctx context.Context, leagueCode, season string) ([]goal.MatchInfo, error)
	FetchMatchShots(ctx context.Context, matchID string) (goal.MatchShots, error)
}

// HighlightsSource is the highlights search provider.
type HighlightsSource interface {
	FetchHighlights(ctx context.Context, homeTeam, awayTeam string, date *string) ([]highlight.Highlight, error)
	FetchLeagueHighlights(ctx context.Context, leagueName string, date *string, limit int) (highlight.Page, error)
}

// Cache stores serialized responses for a fixed TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string) bool
	Clear(ctx context.Context) int
	Status(ctx context.Context) []cache.EntryStatus
	GetOrLoad(ctx context.Context, key string, loader cache.Loader) ([]byte, bool, error)
	TTL() time.Duration
}

// TextCompleter answers a free-text prompt.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
