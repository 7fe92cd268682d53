// Package handlers implements the HTTP surface of the NPC backend. The
// handlers are thin: they decode payloads, call into the sim core, and
// translate its error taxonomy to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
)

// ErrorResponse is the error envelope every endpoint returns on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// writeStorageError maps core errors to status codes: ErrNotFound becomes
// 404, anything else a 500 with the error message.
func writeStorageError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, services.ErrNotFound) {
		writeError(w, logger, http.StatusNotFound, "NPC not found")
		return
	}
	logger.Error("Request failed", "error", err)
	writeError(w, logger, http.StatusInternalServerError, err.Error())
}
