// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage writes {"message": msg} with the given status.
func RespondMessage(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]string{"message": msg})
}

// RespondError logs the error and writes a JSON error response.
//
// Validation errors are written as {"message": ..., "errors": {field: [...]}}
// regardless of status. Server errors hide their detail behind the status text.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if errs, ok := validation.As(err); ok {
		logger.Info("validation failed", "fields", errs.Fields(), "status", status)
		RespondJSON(w, status, map[string]any{
			"message": errs.Message(),
			"errors":  errs,
		})
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
		RespondMessage(w, status, http.StatusText(status))
		return
	}

	logger.Warn("handler error", "error", err, "status", status)
	RespondMessage(w, status, err.Error())
}
