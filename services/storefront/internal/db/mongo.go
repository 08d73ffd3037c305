package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/services/storefront/internal/domain/entities"
)

// Connect opens a client and pings the primary before returning it.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// Indexes lists the indexes each collection needs for the analytics queries.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		entities.BehaviorEventCollection: {
			{Keys: bson.D{{Key: "eventType", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "timestamp", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "eventType", Value: 1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		},
		entities.OrderCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "status", Value: 1}}},
		},
		entities.ProductCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
}

// EnsureIndexes creates any missing index; existing ones are left alone.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for collection, models := range Indexes() {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", collection, err)
		}
	}
	return nil
}
