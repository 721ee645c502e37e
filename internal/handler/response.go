package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// Without helpers, every handler repeats the same boilerplate:
//   w.Header().Set("Content-Type", "application/json")
//   w.WriteHeader(statusCode)
//   json.NewEncoder(w).Encode(data)
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//   {"error": "not_found", "message": "note not found with id 42"}
//
// This makes errors easy to parse for both the frontend and the MCP bridge —
// the bridge in particular relies on the status code to tell "not found"
// apart from other failures.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RomanNihal/Notes-App-with-MCP/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code MUST be set BEFORE writing the body. Once Encode
// calls w.Write() internally, the headers are sent and any later changes are
// silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// If encoding fails, the headers are already sent — we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
// The service layer returns apperror.ErrValidation, apperror.ErrNotFound, etc.
// This function maps those to 400, 404, etc. The service layer itself never
// knows about HTTP status codes — a different consumer (the MCP bridge, a CLI)
// would map the same domain errors to its own vocabulary.
//
// errors.Is() walks the entire error chain (via Unwrap()) to see if the
// sentinel appears anywhere:
//
//	service returns: fmt.Errorf("creating note: %w", apperror.ValidationFailed(...))
//	which wraps:     AppError{Err: ErrValidation, Message: "..."}
//	errors.Is walks: outer error → AppError → ErrValidation ✓ match!
func writeError(w http.ResponseWriter, err error) {
	// errors.As() is like errors.Is() but extracts the error value — it walks
	// the chain and fills appErr if it finds an *AppError, giving us the
	// human-readable message.
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error (e.g. a storage failure) — return a generic 500.
	// NEVER expose internal error details to the client: the raw message might
	// contain SQL or file paths.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
