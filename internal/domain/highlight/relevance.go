package highlight

import (
	"strconv"
	"strings"
)

// ForGoal picks the highlights that mention the scorer or the minute of a
// goal. A player match wins over a minute match for the same highlight.
func ForGoal(player string, minute int, highlights []Highlight) []Tagged {
	out := make([]Tagged, 0)
	if len(highlights) == 0 {
		return out
	}

	needle := strings.ToLower(strings.TrimSpace(player))
	minuteMark := strconv.Itoa(minute) + "'"
	minuteWord := strconv.Itoa(minute) + " min"

	for _, h := range highlights {
		if needle != "" && (containsFold(h.Title, needle) || containsFold(h.Description, needle)) {
			out = append(out, Tagged{Highlight: h, Relevance: RelevancePlayer})
			continue
		}
		if strings.Contains(h.Title, minuteMark) || containsFold(h.Title, minuteWord) {
			out = append(out, Tagged{Highlight: h, Relevance: RelevanceMinute})
		}
	}

	return out
}

// containsFold expects needle to already be lowercase.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
