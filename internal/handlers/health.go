package handlers

import (
	"log/slog"
	"net/http"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
)

// HealthHandler reports storage and cache reachability plus the configured
// reasoning provider.
type HealthHandler struct {
	store  services.Storage
	cache  services.Cache // may be nil
	oracle string
	logger *slog.Logger
}

// NewHealthHandler creates the health handler. oracle names the configured
// reasoning provider and is reported as-is.
func NewHealthHandler(store services.Storage, cache services.Cache, oracle string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		cache:  cache,
		oracle: oracle,
		logger: logger,
	}
}

type healthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Cache   string `json:"cache,omitempty"`
	Oracle  string `json:"oracle,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	status := healthStatus{Status: "ok", Storage: "ok", Oracle: h.oracle}
	code := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("Storage health check failed", "error", err)
		status.Status = "degraded"
		status.Storage = "unreachable"
		code = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		status.Cache = "ok"
		if err := h.cache.Ping(r.Context()); err != nil {
			h.logger.Warn("Cache health check failed", "error", err)
			status.Cache = "unreachable"
		}
	}

	writeJSON(w, h.logger, code, status)
}

// RootHandler serves the service banner at the API root.
type RootHandler struct {
	logger *slog.Logger
}

// NewRootHandler creates the banner handler.
func NewRootHandler(logger *slog.Logger) *RootHandler {
	return &RootHandler{logger: logger}
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Living Los Santos NPC Backend",
		"version": "1.0.0",
		"status":  "running",
	})
}
