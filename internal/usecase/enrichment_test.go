package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/domain/highlight"
	usecasemock "github.com/riskibarqy/goals-api/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func strPtr(v string) *string {
	return &v
}

func testGoal(id, player string, minute int, home, away, date string) goal.Goal {
	g := goal.Goal{
		ID:              id,
		Player:          player,
		Minute:          minute,
		Team:            home,
		Opponent:        away,
		HomeTeam:        home,
		AwayTeam:        away,
		MatchHighlights: []highlight.Highlight{},
		GoalHighlights:  []highlight.Tagged{},
	}
	if date != "" {
		g.MatchDate = strPtr(date)
	}
	return g
}

func TestHighlightEnricher_AttachesMatchAndGoalHighlights(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewHighlightsSource(t)
	enricher := NewHighlightEnricher(source, 0, testLogger())

	clip := highlight.Highlight{ID: "h1", Title: "Smith opens the scoring", URL: "https://example.test/h1"}
	source.On("FetchHighlights", mock.Anything, "Arsenal", "Chelsea", mock.MatchedBy(func(d *string) bool {
		return d != nil && *d == "2024-08-17"
	})).Return([]highlight.Highlight{clip}, nil).Once()

	goals := []goal.Goal{
		testGoal("1", "Smith", 10, "Arsenal", "Chelsea", "2024-08-17T14:00:00"),
		testGoal("2", "Jones", 77, "Arsenal", "Chelsea", "2024-08-17T14:00:00"),
	}

	got := enricher.Enrich(context.Background(), goals)

	for _, g := range got {
		if len(g.MatchHighlights) != 1 || g.MatchHighlights[0].ID != "h1" {
			t.Fatalf("goal %s: expected match highlight h1, got %+v", g.ID, g.MatchHighlights)
		}
	}
	if len(got[0].GoalHighlights) != 1 || got[0].GoalHighlights[0].Relevance != highlight.RelevancePlayer {
		t.Fatalf("expected Smith goal to carry a player_match highlight, got %+v", got[0].GoalHighlights)
	}
	if len(got[1].GoalHighlights) != 0 {
		t.Fatalf("expected Jones goal to have no goal highlights, got %+v", got[1].GoalHighlights)
	}
}

func TestHighlightEnricher_FetchesOncePerMatch(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewHighlightsSource(t)
	sleeper := &countingSleeper{}
	enricher := NewHighlightEnricher(source, DefaultHighlightFetchDelay, testLogger()).WithSleeper(sleeper.Sleep)

	source.On("FetchHighlights", mock.Anything, "Arsenal", "Chelsea", mock.Anything).
		Return([]highlight.Highlight{{ID: "a", Title: "Goal 33'"}}, nil).
		Once()
	source.On("FetchHighlights", mock.Anything, "Lens", "Lyon", mock.Anything).
		Return(nil, errors.New("status=500")).
		Once()

	goals := []goal.Goal{
		testGoal("1", "Saka", 5, "Arsenal", "Chelsea", "2024-08-17T14:00:00"),
		testGoal("2", "Lacazette", 12, "Lens", "Lyon", "2024-09-01T15:00:00"),
		testGoal("3", "Havertz", 33, "Arsenal", "Chelsea", "2024-08-17T14:00:00"),
		testGoal("4", "Nuamah", 50, "Lens", "Lyon", "2024-09-01T15:00:00"),
		testGoal("5", "Odegaard", 80, "Arsenal", "Chelsea", "2024-08-17T14:00:00"),
	}

	got := enricher.Enrich(context.Background(), goals)

	if calls := sleeper.calls.Load(); calls != 2 {
		t.Fatalf("expected one delay per distinct match (2), got %d", calls)
	}
	if len(got[2].GoalHighlights) != 1 || got[2].GoalHighlights[0].Relevance != highlight.RelevanceMinute {
		t.Fatalf("expected minute match on the 33rd minute goal, got %+v", got[2].GoalHighlights)
	}
	if got[1].MatchHighlights == nil || len(got[1].MatchHighlights) != 0 || len(got[3].MatchHighlights) != 0 {
		t.Fatalf("expected failed fetch to leave empty highlights")
	}
}

func TestHighlightEnricher_SkipsGroupsWithoutTeams(t *testing.T) {
	t.Parallel()

	source := usecasemock.NewHighlightsSource(t)
	enricher := NewHighlightEnricher(source, 0, testLogger())

	goals := []goal.Goal{testGoal("1", "Nobody", 1, "", "Chelsea", "")}
	got := enricher.Enrich(context.Background(), goals)

	if len(got[0].MatchHighlights) != 0 {
		t.Fatalf("expected no highlights for incomplete match key")
	}
	source.AssertNotCalled(t, "FetchHighlights", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHighlightEnricher_DisabledPassesThrough(t *testing.T) {
	t.Parallel()

	enricher := NewHighlightEnricher(nil, 0, testLogger())
	goals := []goal.Goal{testGoal("1", "Saka", 5, "Arsenal", "Chelsea", "")}

	if enricher.Enabled() {
		t.Fatalf("expected enricher without a source to be disabled")
	}
	if got := enricher.Enrich(context.Background(), goals); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected goals to pass through untouched, got %+v", got)
	}
}
