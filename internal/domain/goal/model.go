package goal

import (
	"strings"

	"github.com/riskibarqy/goals-api/internal/domain/highlight"
)

const (
	ResultGoal = "Goal"
	SideHome   = "h"
	SideAway   = "a"
	Unknown    = "Unknown"
)

// Goal is one shot whose recorded result is a score, projected from the
// statistics source and optionally annotated with highlights.
type Goal struct {
	ID              string                `json:"id"`
	X               float64               `json:"x"`
	Y               float64               `json:"y"`
	Player          string                `json:"player"`
	Minute          int                   `json:"minute"`
	MatchID         string                `json:"matchId"`
	Team            string                `json:"team"`
	Opponent        string                `json:"opponent"`
	XG              float64               `json:"xg"`
	Situation       string                `json:"situation"`
	ShotType        string                `json:"shotType"`
	MatchDate       *string               `json:"matchDate"`
	HomeTeam        string                `json:"homeTeam"`
	AwayTeam        string                `json:"awayTeam"`
	League          string                `json:"league,omitempty"`
	MatchHighlights []highlight.Highlight `json:"matchHighlights"`
	GoalHighlights  []highlight.Tagged    `json:"goalHighlights"`
}

// MatchInfo is one entry of a league schedule.
type MatchInfo struct {
	ID        string `json:"id" validate:"required"`
	HomeTeam  string `json:"homeTeam" validate:"required"`
	AwayTeam  string `json:"awayTeam" validate:"required"`
	Datetime  string `json:"datetime"`
	IsResult  bool   `json:"isResult"`
	HomeGoals *int   `json:"homeGoals,omitempty"`
	AwayGoals *int   `json:"awayGoals,omitempty"`
}

// RawShot mirrors the statistics source's shot record. Numeric fields are
// kept as text because the source encodes them as strings.
type RawShot struct {
	ID        RawValue `json:"id"`
	Minute    RawValue `json:"minute"`
	Result    string   `json:"result"`
	X         RawValue `json:"X"`
	Y         RawValue `json:"Y"`
	XG        RawValue `json:"xG"`
	Player    string   `json:"player"`
	Side      string   `json:"h_a"`
	Situation string   `json:"situation"`
	ShotType  string   `json:"shotType"`
	MatchID   RawValue `json:"match_id"`
	HomeTeam  string   `json:"h_team"`
	AwayTeam  string   `json:"a_team"`
	Date      string   `json:"date"`
}

// MatchShots holds both sides' shots for one match.
type MatchShots struct {
	Home []RawShot `json:"h"`
	Away []RawShot `json:"a"`
}

func (s MatchShots) Len() int {
	return len(s.Home) + len(s.Away)
}

// LeagueFetchResult is the outcome of fetching one league. Failures are
// carried in Error rather than returned.
type LeagueFetchResult struct {
	League       string  `json:"league"`
	LeagueKey    string  `json:"leagueKey"`
	Goals        []Goal  `json:"goals"`
	Error        *string `json:"error"`
	TotalMatches int     `json:"totalMatches"`
	TotalGoals   int     `json:"totalGoals"`
}

func (r *LeagueFetchResult) SetError(err error) {
	if err == nil {
		r.Error = nil
		return
	}
	msg := err.Error()
	r.Error = &msg
}

// MatchKey groups goals by fixture during highlight enrichment.
type MatchKey struct {
	Home string
	Away string
	Date string
}

func (g Goal) MatchKey() MatchKey {
	return MatchKey{
		Home: g.HomeTeam,
		Away: g.AwayTeam,
		Date: DateOnly(g.MatchDate),
	}
}

// Complete reports whether both team names are known.
func (k MatchKey) Complete() bool {
	return strings.TrimSpace(k.Home) != "" && strings.TrimSpace(k.Away) != ""
}

// DateOnly returns the text before the first 'T' of an ISO datetime.
func DateOnly(matchDate *string) string {
	if matchDate == nil {
		return ""
	}
	value := strings.TrimSpace(*matchDate)
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		return value[:idx]
	}
	return value
}

// NormalizeDatetime turns "2024-08-16 20:00:00" into "2024-08-16T20:00:00".
// Empty input yields nil.
func NormalizeDatetime(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	value = strings.Replace(value, " ", "T", 1)
	return &value
}
