package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/sim"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// NPCHandler serves NPC CRUD plus the per-NPC decision, memory, and
// proximity endpoints.
//
// Routes:
//
//	POST   /api/npcs                 - create NPC
//	GET    /api/npcs                 - list NPCs
//	POST   /api/npcs/create-sample   - seed sample NPCs
//	GET    /api/npcs/{id}            - get NPC
//	PUT    /api/npcs/{id}            - partial update
//	DELETE /api/npcs/{id}            - delete NPC
//	POST   /api/npcs/{id}/decision   - run a decision
//	POST   /api/npcs/{id}/memory     - add a memory
//	GET    /api/npcs/{id}/nearby     - NPCs within ?radius= units
type NPCHandler struct {
	store    services.Storage
	manager  *sim.Manager
	pipeline *sim.Pipeline
	memories *sim.Memories
	logger   *slog.Logger
}

// NewNPCHandler creates the NPC resource handler.
func NewNPCHandler(store services.Storage, manager *sim.Manager, pipeline *sim.Pipeline, memories *sim.Memories, logger *slog.Logger) *NPCHandler {
	return &NPCHandler{
		store:    store,
		manager:  manager,
		pipeline: pipeline,
		memories: memories,
		logger:   logger,
	}
}

func (h *NPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/npcs"), "/")

	switch {
	case path == "":
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST")
		}

	case path == "create-sample":
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
			return
		}
		h.handleCreateSample(w, r)

	case strings.HasSuffix(path, "/decision"):
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
			return
		}
		h.handleDecision(w, r, strings.TrimSuffix(path, "/decision"))

	case strings.HasSuffix(path, "/memory"):
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
			return
		}
		h.handleAddMemory(w, r, strings.TrimSuffix(path, "/memory"))

	case strings.HasSuffix(path, "/nearby"):
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
			return
		}
		h.handleNearby(w, r, strings.TrimSuffix(path, "/nearby"))

	default:
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, path)
		case http.MethodPut:
			h.handleUpdate(w, r, path)
		case http.MethodDelete:
			h.handleDelete(w, r, path)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, PUT, DELETE")
		}
	}
}

func (h *NPCHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req npc.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON NPC definition.")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.manager.Create(r.Context(), &req)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	h.logger.Info("NPC created", "id", created.ID, "name", created.Name, "type", created.Type)
	writeJSON(w, h.logger, http.StatusCreated, created)
}

func (h *NPCHandler) handleList(w http.ResponseWriter, r *http.Request) {
	npcs, err := h.store.ListNPCs(r.Context())
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, npcs)
}

func (h *NPCHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	n, err := h.store.GetNPC(r.Context(), id)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, n)
}

func (h *NPCHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req npc.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON partial NPC update.")
		return
	}

	n, err := h.store.GetNPC(r.Context(), id)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	req.Apply(n)
	if err := h.store.SaveNPC(r.Context(), n); err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, n)
}

func (h *NPCHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.DeleteNPC(r.Context(), id); err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "NPC deleted"})
}

func (h *NPCHandler) handleDecision(w http.ResponseWriter, r *http.Request, id string) {
	var decisionContext map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&decisionContext); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON context object.")
		return
	}

	outcome, err := h.pipeline.Decide(r.Context(), id, decisionContext)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	h.logger.Info("Decision made", "npc_id", id, "action", outcome.Decision.Action)
	writeJSON(w, h.logger, http.StatusOK, outcome)
}

// memoryRequest is the add-memory payload.
type memoryRequest struct {
	EventType    string        `json:"event_type"`
	Description  string        `json:"description"`
	Participants []string      `json:"participants,omitempty"`
	Location     *npc.Location `json:"location,omitempty"`
	Importance   *int          `json:"importance,omitempty"`
}

func (h *NPCHandler) handleAddMemory(w http.ResponseWriter, r *http.Request, id string) {
	var req memoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON memory.")
		return
	}
	if req.Description == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request: description cannot be empty")
		return
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = "interaction"
	}
	importance := 5
	if req.Importance != nil {
		importance = *req.Importance
	}

	memory := npc.NewMemory(eventType, req.Description, importance)
	if req.Participants != nil {
		memory.Participants = req.Participants
	}
	memory.Location = req.Location

	if err := h.memories.Remember(r.Context(), id, memory); err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"message":   "Memory added",
		"memory_id": memory.ID,
	})
}

// nearbyNPC is the trimmed NPC view returned by the nearby endpoint.
type nearbyNPC struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type npc.Type `json:"npc_type"`
}

func (h *NPCHandler) handleNearby(w http.ResponseWriter, r *http.Request, id string) {
	radius := sim.DecisionRadius
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid radius")
			return
		}
		radius = parsed
	}

	n, err := h.store.GetNPC(r.Context(), id)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	nearby, err := h.manager.Near(r.Context(), n.CurrentLocation, radius)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	out := make([]nearbyNPC, 0, len(nearby))
	for _, other := range nearby {
		out = append(out, nearbyNPC{ID: other.ID, Name: other.Name, Type: other.Type})
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

// sampleNPCs are the stock characters used to exercise a fresh install.
var sampleNPCs = []npc.CreateRequest{
	{
		Name:            "Marcus Johnson",
		Type:            npc.TypeCivilian,
		CurrentLocation: npc.Location{X: -1037.0, Y: -2738.0, Z: 20.0, AreaName: "Los Santos International Airport"},
	},
	{
		Name:            "Officer Rodriguez",
		Type:            npc.TypePolice,
		CurrentLocation: npc.Location{X: 425.0, Y: -979.0, Z: 30.0, AreaName: "Mission Row Police Station"},
	},
	{
		Name:            "Tommy 'The Snake' Williams",
		Type:            npc.TypeCriminal,
		CurrentLocation: npc.Location{X: -1393.0, Y: -584.0, Z: 30.0, AreaName: "Del Perro"},
	},
	{
		Name:            "Sarah Chen",
		Type:            npc.TypeShopkeeper,
		CurrentLocation: npc.Location{X: -707.0, Y: -914.0, Z: 19.0, AreaName: "Little Seoul"},
	},
}

func (h *NPCHandler) handleCreateSample(w http.ResponseWriter, r *http.Request) {
	created := make([]nearbyNPC, 0, len(sampleNPCs))
	for i := range sampleNPCs {
		req := sampleNPCs[i]
		n, err := h.manager.Create(r.Context(), &req)
		if err != nil {
			writeStorageError(w, h.logger, err)
			return
		}
		created = append(created, nearbyNPC{ID: n.ID, Name: n.Name, Type: n.Type})
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Sample NPCs created",
		"npcs":    created,
	})
}
