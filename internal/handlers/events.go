package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/sim"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
)

const defaultEventLimit = 50

// EventsHandler serves world event publishing and listing.
//
// Routes:
//
//	POST /api/events          - publish an event and notify witnesses
//	GET  /api/events?limit=N  - most recent events, newest first
type EventsHandler struct {
	store       services.Storage
	broadcaster *sim.Broadcaster
	logger      *slog.Logger
}

// NewEventsHandler creates the events handler.
func NewEventsHandler(store services.Storage, broadcaster *sim.Broadcaster, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		store:       store,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePublish(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST")
	}
}

func (h *EventsHandler) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req event.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON event.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	severity := req.Severity
	if severity == 0 {
		severity = 5
	}
	e := event.New(req.EventType, req.Description, req.Location, req.Participants, severity)

	result, err := h.broadcaster.Publish(r.Context(), e)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	h.logger.Info("Event published", "event_id", e.ID, "type", e.EventType, "notified", result.NotifiedCount)
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultEventLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.store.ListRecentEvents(r.Context(), limit)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, events)
}
