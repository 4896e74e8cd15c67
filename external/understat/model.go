package understat

import "github.com/riskibarqy/goals-api/internal/domain/goal"

type datesEntry struct {
	ID       goal.RawValue `json:"id"`
	IsResult bool          `json:"isResult"`
	Home     teamRef       `json:"h"`
	Away     teamRef       `json:"a"`
	Goals    struct {
		Home goal.RawValue `json:"h"`
		Away goal.RawValue `json:"a"`
	} `json:"goals"`
	Datetime string `json:"datetime"`
}

type teamRef struct {
	ID         goal.RawValue `json:"id"`
	Title      string        `json:"title"`
	ShortTitle string        `json:"short_title"`
}

func (e datesEntry) toMatchInfo() goal.MatchInfo {
	info := goal.MatchInfo{
		ID:       e.ID.String(),
		HomeTeam: e.Home.Title,
		AwayTeam: e.Away.Title,
		Datetime: e.Datetime,
		IsResult: e.IsResult,
	}
	if n, ok := e.Goals.Home.Int(); ok {
		info.HomeGoals = &n
	}
	if n, ok := e.Goals.Away.Int(); ok {
		info.AwayGoals = &n
	}
	return info
}
