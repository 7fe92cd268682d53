package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/sim"
)

// SimulationHandler serves the bulk simulation entry points.
//
// Routes:
//
//	POST /api/simulation/daily-routine  - routine tick for every NPC at the current hour
//	POST /api/simulation/bulk-decisions - decisions for a list of (npc id, context) pairs
type SimulationHandler struct {
	routine  *sim.Routine
	pipeline *sim.Pipeline
	now      func() time.Time
	logger   *slog.Logger
}

// NewSimulationHandler creates the simulation handler. now may be nil to
// use wall-clock time.
func NewSimulationHandler(routine *sim.Routine, pipeline *sim.Pipeline, now func() time.Time, logger *slog.Logger) *SimulationHandler {
	if now == nil {
		now = time.Now
	}
	return &SimulationHandler{
		routine:  routine,
		pipeline: pipeline,
		now:      now,
		logger:   logger,
	}
}

func (h *SimulationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	switch r.URL.Path {
	case "/api/simulation/daily-routine":
		h.handleDailyRoutine(w, r)
	case "/api/simulation/bulk-decisions":
		h.handleBulkDecisions(w, r)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown simulation endpoint")
	}
}

func (h *SimulationHandler) handleDailyRoutine(w http.ResponseWriter, r *http.Request) {
	hour := h.now().Hour()

	results, err := h.routine.TickAll(r.Context(), hour)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":        fmt.Sprintf("Daily routine processed for %d NPCs", len(results)),
		"hour":           hour,
		"processed_npcs": results,
	})
}

func (h *SimulationHandler) handleBulkDecisions(w http.ResponseWriter, r *http.Request) {
	var items []sim.BulkItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON list of {npc_id, context}.")
		return
	}

	results := h.pipeline.DecideBulk(r.Context(), items)

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Decisions processed for %d NPCs", len(results)),
		"results": results,
	})
}
