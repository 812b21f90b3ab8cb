package respond

import (
	"encoding/json"
	"net/http"
	"time"
)

// APIError is the structured error body returned by every endpoint.
// Errors carries field-level validation detail and is omitted otherwise.
type APIError struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// JSON writes an arbitrary payload with the given status. The encode error
// is dropped: the status line is already on the wire by then.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes the structured error body.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APIError{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ValidationError writes a 400 with field-level detail keyed by JSON field name.
func ValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	JSON(w, http.StatusBadRequest, APIError{
		Status:    http.StatusBadRequest,
		Message:   "Validation failed",
		Errors:    fieldErrors,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
