// Package mockdata serves recorded league schedules and shot maps from one
// JSON file so the service can run without reaching Understat.
//
// File layout:
//
//	{
//	  "leagues": [
//	    {
//	      "code": "EPL",
//	      "season": "2024",
//	      "matches": [
//	        {
//	          "id": "26602", "homeTeam": "Manchester United", "awayTeam": "Fulham",
//	          "datetime": "2024-08-16 19:00:00", "isResult": true,
//	          "shots": {"h": [ <shot> ], "a": [ <shot> ]}
//	        }
//	      ]
//	    }
//	  ]
//	}
//
// Shots use the Understat field names (result, X, Y, xG, minute, h_a, ...).
package mockdata

import (
	"context"
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/goals-api/internal/domain/goal"
	"github.com/riskibarqy/goals-api/internal/usecase"
)

type File struct {
	Leagues []LeagueData `json:"leagues" validate:"required,min=1,dive"`
}

type LeagueData struct {
	Code    string      `json:"code" validate:"required"`
	Season  string      `json:"season" validate:"required,numeric,len=4"`
	Matches []MatchData `json:"matches" validate:"dive"`
}

type MatchData struct {
	goal.MatchInfo
	Shots goal.MatchShots `json:"shots"`
}

// Source implements usecase.ResultsSource over a loaded File.
type Source struct {
	schedules map[string][]goal.MatchInfo
	shots     map[string]goal.MatchShots
}

// Load reads and validates path. Any schema problem fails the load.
func Load(path string) (*Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("mock data path is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mock data %s: %w", path, err)
	}

	src, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("mock data %s: %w", path, err)
	}
	return src, nil
}

func Parse(raw []byte) (*Source, error) {
	var file File
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	src := &Source{
		schedules: make(map[string][]goal.MatchInfo, len(file.Leagues)),
		shots:     make(map[string]goal.MatchShots),
	}
	for _, lg := range file.Leagues {
		key := scheduleKey(lg.Code, lg.Season)
		if _, dup := src.schedules[key]; dup {
			return nil, fmt.Errorf("validate: duplicate league entry code=%s season=%s", lg.Code, lg.Season)
		}

		matches := make([]goal.MatchInfo, 0, len(lg.Matches))
		for _, m := range lg.Matches {
			if _, dup := src.shots[m.ID]; dup {
				return nil, fmt.Errorf("validate: duplicate match id=%s", m.ID)
			}
			src.shots[m.ID] = m.Shots
			matches = append(matches, m.MatchInfo)
		}
		src.schedules[key] = matches
	}

	return src, nil
}

func (s *Source) FetchLeagueResults(ctx context.Context, leagueCode, season string) ([]goal.MatchInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, err)
	}

	matches, ok := s.schedules[scheduleKey(leagueCode, season)]
	if !ok {
		return nil, fmt.Errorf("%w: no mock data for league=%s season=%s", usecase.ErrSourceUnavailable, leagueCode, season)
	}

	out := make([]goal.MatchInfo, 0, len(matches))
	for _, m := range matches {
		if m.IsResult {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Source) FetchMatchShots(ctx context.Context, matchID string) (goal.MatchShots, error) {
	if err := ctx.Err(); err != nil {
		return goal.MatchShots{}, fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, err)
	}

	shots, ok := s.shots[strings.TrimSpace(matchID)]
	if !ok {
		return goal.MatchShots{}, fmt.Errorf("%w: no mock shots for match_id=%s", usecase.ErrSourceUnavailable, matchID)
	}
	return shots, nil
}

func scheduleKey(code, season string) string {
	return strings.ToUpper(strings.TrimSpace(code)) + "/" + strings.TrimSpace(season)
}
