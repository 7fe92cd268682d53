// Package storage provides the MongoDB persistence layer and the Redis
// cache used by the API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

const (
	npcCollection   = "npcs"
	eventCollection = "events"
)

// MongoStorage implements the Storage interface over a MongoDB database
// with one collection for NPCs and one for events. Documents are keyed by
// the application-level string id, not Mongo's _id.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Ensure MongoStorage implements Storage interface
var _ services.Storage = (*MongoStorage)(nil)

// NewMongoStorage connects to MongoDB and returns a storage instance.
func NewMongoStorage(ctx context.Context, mongoURL string, dbName string, logger *slog.Logger) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	return &MongoStorage{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

func (s *MongoStorage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Error("Failed to close MongoDB connection", "error", err)
		return err
	}
	s.logger.Info("MongoDB connection closed")
	return nil
}

// WaitForConnection waits for MongoDB to become available (used during startup)
func (s *MongoStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := s.Ping(ctx); err != nil {
			s.logger.Debug("MongoDB not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for mongodb: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		s.logger.Info("MongoDB connection established")
		return nil
	}

	return fmt.Errorf("mongodb did not become available after %d attempts", maxRetries)
}

// NPC operations

func (s *MongoStorage) CreateNPC(ctx context.Context, n *npc.NPC) error {
	if _, err := s.db.Collection(npcCollection).InsertOne(ctx, n); err != nil {
		s.logger.Error("Failed to insert NPC", "id", n.ID, "error", err)
		return fmt.Errorf("failed to insert npc: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetNPC(ctx context.Context, id string) (*npc.NPC, error) {
	var n npc.NPC
	err := s.db.Collection(npcCollection).FindOne(ctx, bson.M{"id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		s.logger.Error("Failed to load NPC", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load npc: %w", err)
	}
	return &n, nil
}

func (s *MongoStorage) ListNPCs(ctx context.Context) ([]*npc.NPC, error) {
	cursor, err := s.db.Collection(npcCollection).Find(ctx, bson.M{})
	if err != nil {
		s.logger.Error("Failed to list NPCs", "error", err)
		return nil, fmt.Errorf("failed to list npcs: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var npcs []*npc.NPC
	if err := cursor.All(ctx, &npcs); err != nil {
		return nil, fmt.Errorf("failed to decode npcs: %w", err)
	}
	if npcs == nil {
		npcs = []*npc.NPC{}
	}
	return npcs, nil
}

func (s *MongoStorage) SaveNPC(ctx context.Context, n *npc.NPC) error {
	result, err := s.db.Collection(npcCollection).ReplaceOne(ctx, bson.M{"id": n.ID}, n)
	if err != nil {
		s.logger.Error("Failed to save NPC", "id", n.ID, "error", err)
		return fmt.Errorf("failed to save npc: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) DeleteNPC(ctx context.Context, id string) error {
	result, err := s.db.Collection(npcCollection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		s.logger.Error("Failed to delete NPC", "id", id, "error", err)
		return fmt.Errorf("failed to delete npc: %w", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) CountNPCs(ctx context.Context) (int64, error) {
	count, err := s.db.Collection(npcCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count npcs: %w", err)
	}
	return count, nil
}

func (s *MongoStorage) CountNPCsByType(ctx context.Context, t npc.Type) (int64, error) {
	count, err := s.db.Collection(npcCollection).CountDocuments(ctx, bson.M{"npc_type": t})
	if err != nil {
		return 0, fmt.Errorf("failed to count npcs by type: %w", err)
	}
	return count, nil
}

// Event operations

func (s *MongoStorage) CreateEvent(ctx context.Context, e *event.GameEvent) error {
	if _, err := s.db.Collection(eventCollection).InsertOne(ctx, e); err != nil {
		s.logger.Error("Failed to insert event", "id", e.ID, "error", err)
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (s *MongoStorage) ListRecentEvents(ctx context.Context, limit int64) ([]*event.GameEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := s.db.Collection(eventCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		s.logger.Error("Failed to list events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var events []*event.GameEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	if events == nil {
		events = []*event.GameEvent{}
	}
	return events, nil
}

func (s *MongoStorage) CountEvents(ctx context.Context) (int64, error) {
	count, err := s.db.Collection(eventCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (s *MongoStorage) CountEventsSince(ctx context.Context, t time.Time) (int64, error) {
	count, err := s.db.Collection(eventCollection).CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": t}})
	if err != nil {
		return 0, fmt.Errorf("failed to count events since: %w", err)
	}
	return count, nil
}
