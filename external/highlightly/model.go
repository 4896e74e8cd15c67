package highlightly

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/goals-api/internal/domain/highlight"
)

type highlightsEnvelope struct {
	Data       []highlightDTO `json:"data"`
	Pagination struct {
		TotalCount int `json:"totalCount"`
		Offset     int `json:"offset"`
		Limit      int `json:"limit"`
	} `json:"pagination"`
}

type highlightDTO struct {
	ID          any    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	EmbedURL    string `json:"embedUrl"`
	Source      string `json:"source"`
}

func (e highlightsEnvelope) toDomain() []highlight.Highlight {
	out := make([]highlight.Highlight, 0, len(e.Data))
	for _, item := range e.Data {
		out = append(out, highlight.Highlight{
			ID:          idString(item.ID),
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			EmbedURL:    item.EmbedURL,
			Source:      item.Source,
			Type:        item.Type,
		})
	}
	return out
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
