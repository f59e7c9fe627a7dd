package dto

// SearchRequest is the body of a semantic search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit uint64 `json:"limit,omitempty"`
}

// SearchHit is one scored search result.
type SearchHit struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload"`
}

// SearchResponse is the body of a search result.
type SearchResponse struct {
	Success bool        `json:"success"`
	Results []SearchHit `json:"results"`
}
