package highlight

// Relevance tags explain why a highlight was attached to a single goal.
const (
	RelevancePlayer = "player_match"
	RelevanceMinute = "minute_match"
)

// Highlight is a media record from the highlights provider. Fields are
// passed through as the provider returns them.
type Highlight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	EmbedURL    string `json:"embedUrl"`
	Source      string `json:"source"`
	Type        string `json:"type"`
}

// Tagged is a Highlight judged relevant to one goal.
type Tagged struct {
	Highlight
	Relevance string `json:"relevance"`
}

type Pagination struct {
	TotalCount int `json:"totalCount"`
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
}

// Page is one page of league highlights.
type Page struct {
	Data       []Highlight `json:"data"`
	Pagination Pagination  `json:"pagination"`
}
