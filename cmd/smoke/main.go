// Command smoke exercises a running API instance end to end: it seeds the
// sample NPCs, runs a decision for each, and publishes a test event.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/decision"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8001", "API base URL")
	flag.Parse()

	client := &http.Client{Timeout: 90 * time.Second}

	// Seed the sample cast
	var seeded struct {
		Message string `json:"message"`
		NPCs    []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"npcs"`
	}
	if err := post(client, *baseURL+"/api/npcs/create-sample", map[string]interface{}{}, &seeded); err != nil {
		log.Fatal("Failed to seed sample NPCs: ", err)
	}
	fmt.Printf("Seeded %d NPCs\n", len(seeded.NPCs))

	// Run a decision for each
	for _, n := range seeded.NPCs {
		var outcome decision.Outcome
		body := map[string]interface{}{"weather": "sunny", "traffic": "normal"}
		if err := post(client, fmt.Sprintf("%s/api/npcs/%s/decision", *baseURL, n.ID), body, &outcome); err != nil {
			log.Fatal("Decision failed for ", n.Name, ": ", err)
		}
		fmt.Printf("%s -> %s (%s)\n", n.Name, outcome.Decision.Action, outcome.Decision.Reasoning)
	}

	// Publish an event near the police station and see who noticed
	var published struct {
		EventID       string `json:"event_id"`
		NotifiedCount int    `json:"notified_npcs"`
	}
	eventBody := map[string]interface{}{
		"event_type":  "robbery",
		"description": "A convenience store was robbed",
		"location":    npc.Location{X: 425.0, Y: -979.0, Z: 30.0, AreaName: "Mission Row"},
		"severity":    7,
	}
	if err := post(client, *baseURL+"/api/events", eventBody, &published); err != nil {
		log.Fatal("Failed to publish event: ", err)
	}
	fmt.Printf("Event %s witnessed by %d NPCs\n", published.EventID, published.NotifiedCount)
}

func post(client *http.Client, url string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
