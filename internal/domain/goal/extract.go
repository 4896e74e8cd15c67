package goal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/goals-api/internal/domain/highlight"
)

// ErrMalformedRecord marks a shot that cannot be projected into a Goal.
var ErrMalformedRecord = errors.New("malformed record")

// Extract turns one match's shots into goals, home shots first, keeping the
// source order within each side. Shots that cannot be coerced are skipped
// and returned as errors wrapping ErrMalformedRecord.
func Extract(match MatchInfo, shots MatchShots) ([]Goal, []error) {
	goals := make([]Goal, 0)
	var errs []error

	all := make([]RawShot, 0, shots.Len())
	all = append(all, shots.Home...)
	all = append(all, shots.Away...)

	for _, shot := range all {
		if shot.Result != ResultGoal {
			continue
		}

		g, err := project(match, shot)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		goals = append(goals, g)
	}

	return goals, errs
}

func project(match MatchInfo, shot RawShot) (Goal, error) {
	minute, ok := shot.Minute.Int()
	if !ok {
		return Goal{}, malformed(shot, "minute=%q is not a number", shot.Minute)
	}

	home := firstNonEmpty(match.HomeTeam, shot.HomeTeam)
	away := firstNonEmpty(match.AwayTeam, shot.AwayTeam)
	if home == "" || away == "" {
		return Goal{}, malformed(shot, "team names missing")
	}
	if home == away {
		return Goal{}, malformed(shot, "home and away are both %q", home)
	}

	var team, opponent string
	switch strings.ToLower(strings.TrimSpace(shot.Side)) {
	case SideHome:
		team, opponent = home, away
	case SideAway:
		team, opponent = away, home
	default:
		return Goal{}, malformed(shot, "unknown side %q", shot.Side)
	}

	matchID := match.ID
	if matchID == "" {
		matchID = shot.MatchID.String()
	}
	matchDate := NormalizeDatetime(match.Datetime)
	if matchDate == nil {
		matchDate = NormalizeDatetime(shot.Date)
	}

	return Goal{
		ID:              shot.ID.String(),
		X:               coordinate(shot.X),
		Y:               coordinate(shot.Y),
		Player:          strings.TrimSpace(shot.Player),
		Minute:          minute,
		MatchID:         matchID,
		Team:            team,
		Opponent:        opponent,
		XG:              coordinate(shot.XG),
		Situation:       orUnknown(shot.Situation),
		ShotType:        orUnknown(shot.ShotType),
		MatchDate:       matchDate,
		HomeTeam:        home,
		AwayTeam:        away,
		MatchHighlights: []highlight.Highlight{},
		GoalHighlights:  []highlight.Tagged{},
	}, nil
}

// coordinate defaults absent, unparseable and negative values to zero.
func coordinate(v RawValue) float64 {
	f, ok := v.Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func orUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Unknown
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func malformed(shot RawShot, format string, args ...any) error {
	return fmt.Errorf("%w: shot=%s: %s", ErrMalformedRecord, shot.ID.String(), fmt.Sprintf(format, args...))
}
