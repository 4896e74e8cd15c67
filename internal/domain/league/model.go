package league

import (
	"fmt"
	"strings"
)

// Canonical league keys accepted at the API boundary.
const (
	KeyEPL        = "epl"
	KeyLaLiga     = "laliga"
	KeyBundesliga = "bundesliga"
	KeySerieA     = "seriea"
	KeyLigue1     = "ligue1"
)

// League is one competition the aggregator can scrape. Code is the
// identifier used by the statistics source, Name the display name used by
// the highlights provider.
type League struct {
	Key         string
	Code        string
	Name        string
	CountryCode string
	Aliases     []string
}

func (l League) Validate() error {
	if l.Key == "" {
		return fmt.Errorf("league key is required")
	}
	if l.Code == "" {
		return fmt.Errorf("league code is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// Matches reports whether raw names this league by key or alias.
func (l League) Matches(raw string) bool {
	normalized := NormalizeKey(raw)
	if normalized == "" {
		return false
	}
	if normalized == l.Key {
		return true
	}
	for _, alias := range l.Aliases {
		if normalized == alias {
			return true
		}
	}
	return false
}

// NormalizeKey lowercases and trims a user supplied league key. Dashes and
// spaces are folded to underscores so "la-liga" and "La Liga" resolve like
// "la_liga".
func NormalizeKey(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.NewReplacer("-", "_", " ", "_").Replace(value)
	return value
}
