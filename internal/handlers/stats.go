package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

const (
	statsCacheKey = "stats"
	statsCacheTTL = 15 * time.Second
)

// Stats is the aggregate system view served at /api/stats.
type Stats struct {
	TotalNPCs       int64            `json:"total_npcs"`
	NPCTypes        map[string]int64 `json:"npc_types"`
	TotalEvents     int64            `json:"total_events"`
	RecentEvents24h int64            `json:"recent_events_24h"`
	SystemStatus    string           `json:"system_status"`
	Timestamp       time.Time        `json:"timestamp"`
}

// StatsHandler serves aggregate counts, optionally fronted by the cache so
// dashboards can poll without loading the primary store.
type StatsHandler struct {
	store  services.Storage
	cache  services.Cache // may be nil
	now    func() time.Time
	logger *slog.Logger
}

// NewStatsHandler creates the stats handler. cache and now may be nil.
func NewStatsHandler(store services.Storage, cache services.Cache, now func() time.Time, logger *slog.Logger) *StatsHandler {
	if now == nil {
		now = time.Now
	}
	return &StatsHandler{
		store:  store,
		cache:  cache,
		now:    now,
		logger: logger,
	}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), statsCacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
	}

	stats, err := h.collect(r)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	if h.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := h.cache.Set(r.Context(), statsCacheKey, string(data), statsCacheTTL); err != nil {
				h.logger.Warn("Failed to cache stats", "error", err)
			}
		}
	}

	writeJSON(w, h.logger, http.StatusOK, stats)
}

func (h *StatsHandler) collect(r *http.Request) (*Stats, error) {
	ctx := r.Context()

	totalNPCs, err := h.store.CountNPCs(ctx)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(npc.Types))
	for _, t := range npc.Types {
		count, err := h.store.CountNPCsByType(ctx, t)
		if err != nil {
			return nil, err
		}
		byType[string(t)] = count
	}

	totalEvents, err := h.store.CountEvents(ctx)
	if err != nil {
		return nil, err
	}

	// "Recent" means since midnight UTC today.
	midnight := h.now().UTC().Truncate(24 * time.Hour)
	recentEvents, err := h.store.CountEventsSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalNPCs:       totalNPCs,
		NPCTypes:        byType,
		TotalEvents:     totalEvents,
		RecentEvents24h: recentEvents,
		SystemStatus:    "operational",
		Timestamp:       h.now().UTC(),
	}, nil
}
