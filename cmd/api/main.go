package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/config"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/handlers"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/logger"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/middleware"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/sim"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Living Los Santos NPC backend",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"db_name", cfg.DBName)

	var oracle services.Oracle
	switch strings.ToLower(cfg.LLMProvider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Error("OpenAI API key is required when using openai provider")
			os.Exit(1)
		}
		oracle = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.ModelName, log)
		log.Info("Using OpenAI reasoning provider")
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		oracle = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic reasoning provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"openai", "anthropic"})
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	store, err := storage.NewMongoStorage(storageCtx, cfg.MongoURL, cfg.DBName, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	var cache services.Cache
	if cfg.RedisURL != "" {
		redisCache := storage.NewRedisCache(cfg.RedisURL, log)
		if err := redisCache.Ping(storageCtx); err != nil {
			log.Warn("Cache unreachable, continuing without it", "error", err)
		} else {
			cache = redisCache
			log.Info("Cache connection established")
		}
	}

	manager := sim.NewManager(store, nil)
	memories := sim.NewMemories(store, log)
	routine := sim.NewRoutine(store, memories, log)
	pipeline := sim.NewPipeline(store, oracle, manager, memories, nil, nil, log)
	broadcaster := sim.NewBroadcaster(store, manager, memories, log)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, cache, cfg.LLMProvider, log))
	mux.Handle("/api/", handlers.NewRootHandler(log))

	npcHandler := handlers.NewNPCHandler(store, manager, pipeline, memories, log)
	mux.Handle("/api/npcs", npcHandler)
	mux.Handle("/api/npcs/", npcHandler)

	simHandler := handlers.NewSimulationHandler(routine, pipeline, nil, log)
	mux.Handle("/api/simulation/", simHandler)

	eventsHandler := handlers.NewEventsHandler(store, broadcaster, log)
	mux.Handle("/api/events", eventsHandler)

	mux.Handle("/api/stats", handlers.NewStatsHandler(store, cache, nil, log))

	handler := middleware.Logger(middleware.CORS(mux))
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
	if cache != nil {
		if err := cache.Close(); err != nil {
			log.Error("Error closing cache connection", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
