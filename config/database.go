package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UserCollection        = "users"
	VisitCollection       = "visits"
	PreApprovalCollection = "pre_approvals"
	SystemCollection      = "system"
)

// MongoConnect opens and pings a client for cfg.MongoURI.
func MongoConnect(ctx context.Context, cfg *AppConfig) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGOSTRING is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.Info("connected to MongoDB", "database", cfg.DBName)
	return client, nil
}

func DisconnectDB(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		slog.Error("error disconnecting from MongoDB", "error", err)
		return
	}
	slog.Info("disconnected from MongoDB")
}

// InitDatabase creates the indexes the repositories rely on.
func InitDatabase(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		VisitCollection: {
			{Keys: bson.D{{Key: "passcode", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "visitor_id", Value: 1}, {Key: "visit_date", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "visit_date", Value: -1}}},
		},
		PreApprovalCollection: {
			{Keys: bson.D{{Key: "passcode", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "valid_until", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
