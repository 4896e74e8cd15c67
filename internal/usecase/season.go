package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultSeason = "2024"

// NormalizeSeason validates a season start year, falling back to fallback
// when raw is blank.
func NormalizeSeason(raw, fallback string) (string, error) {
	season := strings.TrimSpace(raw)
	if season == "" {
		season = strings.TrimSpace(fallback)
	}
	if season == "" {
		season = DefaultSeason
	}

	year, err := strconv.Atoi(season)
	if err != nil || len(season) != 4 || year < 2014 {
		return "", fmt.Errorf("%w: season must be a four digit start year from 2014, got %q", ErrInvalidInput, raw)
	}
	return season, nil
}

// SeasonLabel renders "2024" as "2024-2025".
func SeasonLabel(season string) string {
	year, err := strconv.Atoi(season)
	if err != nil {
		return season
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}
