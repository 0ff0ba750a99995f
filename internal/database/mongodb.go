package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureRestaurantIndexes creates the indexes the directory queries rely on:
// a 2dsphere index for geo lookups, a compound (city, state) index for the
// location listings, and a weighted text index backing /restaurants/search.
func EnsureRestaurantIndexes(ctx context.Context, col *mongo.Collection) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "state", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "cuisine", Value: "text"},
				{Key: "city", Value: "text"},
				{Key: "state", Value: "text"},
				{Key: "province", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().SetName("restaurant_text"),
		},
	}
	_, err := col.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("ensure restaurant indexes: %w", err)
	}
	return nil
}
