// Package dto defines the request and response shapes of the v1 API.
package dto

// InsertResponse reports a single-record insert.
type InsertResponse struct {
	Success      bool   `json:"success"`
	InsertedID   string `json:"inserted_id"`
	Acknowledged bool   `json:"acknowledged"`
}

// UpdateRequest is the body of a bulk update: which records to touch and
// the fields to set on them.
type UpdateRequest struct {
	Filters map[string]any `json:"filters"`
	Data    map[string]any `json:"data"`
}

// UpdateResponse reports a bulk update.
type UpdateResponse struct {
	Success       bool  `json:"success"`
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
	Acknowledged  bool  `json:"acknowledged"`
}

// DeleteResponse reports a bulk delete.
type DeleteResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deleted_count"`
	Acknowledged bool  `json:"acknowledged"`
}

// CountResponse reports a count query.
type CountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
