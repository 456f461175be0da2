package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/verdantiq/greenrag/internal/database"
)

// ErrValidation marks request-level validation failures so WriteError maps
// them to 400.
var ErrValidation = errors.New("validation failed")

// APIError carries an explicit HTTP status chosen by a handler.
type APIError struct {
	status  int
	message string
}

// NewAPIError creates an APIError.
func NewAPIError(status int, message string) *APIError {
	return &APIError{status: status, message: message}
}

func (e *APIError) Error() string { return e.message }

// Status returns the HTTP status code.
func (e *APIError) Status() int { return e.status }

// ErrorBody is a single error element in an error response.
type ErrorBody struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// ErrorResponse wraps error elements for the wire.
type ErrorResponse struct {
	Errors []ErrorBody `json:"errors"`
}

// WriteError maps an error to an HTTP status and writes the JSON error
// body. Unknown errors become 500 with the error text as detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	title := "Internal Server Error"
	detail := err.Error()

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status()
		title = http.StatusText(apiErr.Status())
		detail = apiErr.Error()
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		title = "Not Found"
	case errors.Is(err, ErrValidation):
		status = http.StatusBadRequest
		title = "Validation Error"
	}

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if logger != nil {
		logger.Error("request error",
			"request_id", requestID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := ErrorResponse{Errors: []ErrorBody{{
		Status: strconv.Itoa(status),
		Title:  title,
		Detail: detail,
		ID:     requestID,
	}}}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
