package memory

import "github.com/riskibarqy/goals-api/internal/domain/league"

// SeedLeagues returns the supported leagues in canonical order.
func SeedLeagues() []league.League {
	return []league.League{
		{
			Key:         league.KeyEPL,
			Code:        "EPL",
			Name:        "Premier League",
			CountryCode: "GB",
			Aliases:     []string{"premier_league", "premierleague"},
		},
		{
			Key:         league.KeyLaLiga,
			Code:        "La_liga",
			Name:        "La Liga",
			CountryCode: "ES",
			Aliases:     []string{"la_liga"},
		},
		{
			Key:         league.KeyBundesliga,
			Code:        "Bundesliga",
			Name:        "Bundesliga",
			CountryCode: "DE",
		},
		{
			Key:         league.KeySerieA,
			Code:        "Serie_A",
			Name:        "Serie A",
			CountryCode: "IT",
			Aliases:     []string{"serie_a"},
		},
		{
			Key:         league.KeyLigue1,
			Code:        "Ligue_1",
			Name:        "Ligue 1",
			CountryCode: "FR",
			Aliases:     []string{"ligue_1"},
		},
	}
}
