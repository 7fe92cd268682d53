// Package decision defines the contract between the NPC pipeline and the
// reasoning model: the situational request sent out and the structured
// response expected back.
package decision

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// Request carries the situational context for a single NPC decision. It is
// built fresh per call and never persisted.
type Request struct {
	NPCID      string                 `json:"npc_id"`
	Context    map[string]interface{} `json:"context"`
	NearbyNPCs []string               `json:"nearby_npcs"`
	TimeOfDay  int                    `json:"time_of_day"`
	Weather    string                 `json:"weather"`
}

// Response is the structured decision produced by the reasoning model, or by
// the fallback policy when the model is unavailable. The two are
// indistinguishable in shape.
type Response struct {
	Action            string        `json:"action"`
	TargetLocation    *npc.Location `json:"target_location,omitempty"`
	InteractionTarget *string       `json:"interaction_target,omitempty"`
	Dialogue          *string       `json:"dialogue,omitempty"`
	Reasoning         string        `json:"reasoning"`
}

// Outcome wraps a decision with the NPC it was made for and when.
type Outcome struct {
	NPCID     string    `json:"npc_id"`
	Decision  Response  `json:"decision"`
	Timestamp time.Time `json:"timestamp"`
}

// ParseResponse decodes model output into a Response. Models routinely wrap
// JSON in markdown code fences, so known fences are stripped before decoding.
// A decode failure returns an error; callers are expected to fall back rather
// than propagate it.
func ParseResponse(raw string) (*Response, error) {
	cleaned := stripCodeFence(raw)

	var resp Response
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse decision response: %w", err)
	}

	if resp.Action == "" {
		resp.Action = "walk"
	}
	if resp.Reasoning == "" {
		resp.Reasoning = "Default decision"
	}
	return &resp, nil
}

// stripCodeFence removes a surrounding ```json ... ``` or ``` ... ``` wrapper
// if present, returning the inner text trimmed.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}
