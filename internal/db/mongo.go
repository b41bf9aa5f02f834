package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ownersCollection   = "owners"
	projectsCollection = "projects"

	connectTimeout = 10 * time.Second
)

// Connect establishes a pooled MongoDB client and verifies the connection
// with a ping. The client is passed explicitly to the repositories; there
// is no package-level instance.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on: a unique
// index on owner email (registration conflict detection) and an ownerId
// index on projects (every project read path filters by owner).
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(ownersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create owners email index: %w", err)
	}

	_, err = database.Collection(projectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create projects ownerId index: %w", err)
	}
	return nil
}

// wrapStorageErr maps driver failures to the repository error taxonomy:
// missing documents become ErrNotFound, everything else is treated as a
// transient storage failure the caller may retry.
func wrapStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
