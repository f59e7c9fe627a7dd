package dto

import "time"

// AccountRequest is the body of an account create/update.
type AccountRequest struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountListResponse represents a list of accounts.
type AccountListResponse struct {
	Data       []AccountResponse `json:"data"`
	TotalCount int               `json:"total_count"`
}
