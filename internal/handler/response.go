package handler

// RESPONSE HELPERS:
// Every JSON answer goes through writeJSON and every failure through
// writeError, so the API always has the same error shape:
//
//	{"error": "not_found", "message": "candidate not found"}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/roster-lookup/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status go out before the body; nothing can change them after.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// ERROR MAPPING:
//
//	apperror.ErrNotFound   → 404 not_found
//	apperror.ErrValidation → 400 validation_error
//	anything else          → 500 internal_error, with a generic message
func writeError(w http.ResponseWriter, err error) {
	status, errorType, message := classify(err)
	writeJSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}

// classify is shared by the JSON API and the HTML page.
func classify(err error) (status int, errorType, message string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return http.StatusNotFound, "not_found", appErr.Message
		case errors.Is(err, apperror.ErrValidation):
			return http.StatusBadRequest, "validation_error", appErr.Message
		}
	}

	// Internal details (SQL, file paths) never reach the client.
	return http.StatusInternalServerError, "internal_error", "An internal error occurred"
}
