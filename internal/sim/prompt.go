package sim

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/decision"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// systemPrompt is the fixed role given to the reasoning model.
const systemPrompt = "You are an AI controlling NPCs in a living Los Santos. Always respond with valid JSON."

// buildPrompt assembles the situational prompt for one NPC decision.
func buildPrompt(n *npc.NPC, req *decision.Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, a %s in Los Santos (GTA 5). You must make a realistic decision based on your context.\n\n", n.Name, n.Type)

	sb.WriteString("PERSONALITY:\n")
	fmt.Fprintf(&sb, "Aggression: %d/10\n", n.Personality.Aggression)
	fmt.Fprintf(&sb, "Honesty: %d/10\n", n.Personality.Honesty)
	fmt.Fprintf(&sb, "Sociability: %d/10\n", n.Personality.Sociability)
	fmt.Fprintf(&sb, "Intelligence: %d/10\n", n.Personality.Intelligence)
	fmt.Fprintf(&sb, "Courage: %d/10\n", n.Personality.Courage)
	fmt.Fprintf(&sb, "Wealth level: %d/10\n\n", n.Personality.WealthLevel)

	sb.WriteString("CURRENT STATE:\n")
	fmt.Fprintf(&sb, "- Mood: %s\n", n.CurrentMood)
	fmt.Fprintf(&sb, "- Activity: %s\n", n.CurrentActivity)
	fmt.Fprintf(&sb, "- Health: %d/100\n", n.Health)
	fmt.Fprintf(&sb, "- Stress: %d/100\n", n.StressLevel)
	fmt.Fprintf(&sb, "- Position: %s\n\n", areaContext(n.CurrentLocation))

	sb.WriteString("TIME CONTEXT:\n")
	fmt.Fprintf(&sb, "- Hour: %dh\n", req.TimeOfDay)
	fmt.Fprintf(&sb, "- %s\n", timeContext(req.TimeOfDay))
	fmt.Fprintf(&sb, "- Weather: %s\n\n", req.Weather)

	sb.WriteString("RECENT MEMORIES:\n")
	sb.WriteString(recentMemories(n))
	sb.WriteString("\n\n")

	sb.WriteString("ENVIRONMENT CONTEXT:\n")
	if ctxJSON, err := json.MarshalIndent(req.Context, "", "  "); err == nil {
		sb.Write(ctxJSON)
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "NEARBY NPCS: %d people\n\n", len(req.NearbyNPCs))

	sb.WriteString("INSTRUCTIONS:\n")
	fmt.Fprintf(&sb, "As %s, decide your next action. Be realistic for your type (%s) and personality.\n\n", n.Name, n.Type)
	sb.WriteString("Respond ONLY in the following JSON format:\n")
	sb.WriteString(`{
    "action": "action_tag",
    "target_location": {"x": 0.0, "y": 0.0, "z": 0.0, "area_name": "zone_name"},
    "interaction_target": "target_id_or_null",
    "dialogue": "what_you_say_or_null",
    "reasoning": "why_this_decision"
}`)
	sb.WriteString("\n\nPossible actions: drive, walk, talk, buy, work, patrol, commit_crime, flee, hide, socialize, sleep, eat\n")

	return sb.String()
}

// recentMemories renders up to the five most recent short-term memories,
// most recent last.
func recentMemories(n *npc.NPC) string {
	memories := n.ShortTermMemory
	if len(memories) > 5 {
		memories = memories[len(memories)-5:]
	}
	if len(memories) == 0 {
		return "No recent memories"
	}

	lines := make([]string, 0, len(memories))
	for _, m := range memories {
		lines = append(lines, fmt.Sprintf("- %s (%s)", m.Description, m.Timestamp.Format("15:04")))
	}
	return strings.Join(lines, "\n")
}

// timeContext describes what the city is like at a given hour.
func timeContext(hour int) string {
	switch {
	case hour >= 6 && hour <= 9:
		return "Morning rush hour - heavy traffic, people heading to work"
	case hour >= 9 && hour <= 17:
		return "Business hours - normal activity, shops open"
	case hour >= 17 && hour <= 19:
		return "Evening rush hour - dense traffic, people heading home"
	case hour >= 19 && hour <= 23:
		return "Evening - bars and restaurants busy, fewer people on the streets"
	default:
		return "Night - few people around, criminal activity possible, shops closed"
	}
}

// areaContext maps known substrings of the area name to a human-readable
// zone description. Unknown areas fall back to the raw name.
func areaContext(loc npc.Location) string {
	area := strings.ToLower(loc.AreaName)

	switch {
	case strings.Contains(area, "downtown") || strings.Contains(area, "center"):
		return "Downtown - business district, crowded"
	case strings.Contains(area, "grove"):
		return "Grove Street - residential neighborhood"
	case strings.Contains(area, "vinewood"):
		return "Vinewood - upscale neighborhood"
	case strings.Contains(area, "beach"):
		return "Beach - tourist area"
	case strings.Contains(area, "industrial"):
		return "Industrial zone - warehouses and factories"
	default:
		return fmt.Sprintf("Area: %s", loc.AreaName)
	}
}
