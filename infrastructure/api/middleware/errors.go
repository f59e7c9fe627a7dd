package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/unifly-app/unifly/application/service"
	"github.com/unifly-app/unifly/internal/database"
)

// APIError is an error carrying an HTTP status code.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates an APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// detailResponse is the error envelope every endpoint returns.
type detailResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteDetail writes the {"detail": msg} error envelope.
func WriteDetail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, detailResponse{Detail: msg})
}

// WriteError maps an error to a status code and writes the error envelope.
// Unrecognized errors become 500s.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	WriteDetail(w, status, err.Error())
}

func statusFor(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code()
	}

	switch {
	case errors.Is(err, service.ErrUnknownEntity),
		errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotSearchable):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidAccount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
