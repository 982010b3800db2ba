// Package mongo implements the repository interfaces on top of MongoDB.
//
// Documents carry their own application-level "id" field (an opaque UUID
// string) alongside Mongo's _id; all queries match on the application id.
// Uniqueness of users.email and users.id is enforced with unique indexes
// created at startup, so concurrent registrations race safely in the
// database rather than in application code.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// DB wraps a Mongo client and implements every repository interface.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Collection names, shared with cmd/seed.
const (
	ColUsers            = "users"
	ColSessions         = "sessions"
	ColQuizzes          = "quizzes"
	ColQuizResults      = "quiz_results"
	ColChallenges       = "challenges"
	ColChallengeResults = "challenge_results"
	ColInterviews       = "mock_interviews"
	ColFriends          = "friends"
	ColBattles          = "battles"
)

// New connects to MongoDB, verifies connectivity with a ping, and ensures
// the unique indexes. A failed ping is returned as an error so the process
// can refuse to start rather than serving traffic against a dead store.
func New(ctx context.Context, url, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: pinging %s: %w", dbName, err)
	}

	db := &DB{client: client, db: client.Database(dbName)}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return db, nil
}

// EnsureIndexes creates the unique indexes on users.email and users.id.
// Index creation is idempotent; calling this on every startup is fine.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(ColUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo: creating user indexes: %w", err)
	}
	return nil
}

// Collection exposes a raw collection handle. cmd/seed uses this for bulk
// setup work that has no place in the repository interfaces.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Close disconnects from the database, flushing any buffered writes.
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: disconnecting: %w", err)
	}
	return nil
}
