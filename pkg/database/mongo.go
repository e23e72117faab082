// Package database owns the MongoDB client: connect, ping, index bootstrap
// and disconnect. Nothing here is global; kernel wiring passes *Store to the
// repositories and closes it on shutdown.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Collection names.
const (
	UsersCollection  = "users"
	OrdersCollection = "orders"
)

// DefaultDatabase is used when neither MONGODB_DATABASE nor the URI path
// names one.
const DefaultDatabase = "app"

const connectTimeout = 10 * time.Second

// Store is a connected client bound to one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// DatabaseName picks the database: explicit name, then the URI path, then
// DefaultDatabase.
func DatabaseName(uri, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if cs, err := connstring.Parse(uri); err == nil && cs.Database != "" {
		return cs.Database
	}
	return DefaultDatabase
}

// Connect dials uri with the stable v1 server API and verifies the primary
// is reachable.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true)).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(DatabaseName(uri, dbName))}, nil
}

// DB returns the bound database.
func (s *Store) DB() *mongo.Database { return s.db }

// Collection returns a collection of the bound database.
func (s *Store) Collection(name string) *mongo.Collection { return s.db.Collection(name) }

// Ping checks the primary, used by /healthz.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Indexes lists the indexes servicehub relies on, per collection.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}},
		OrdersCollection: {{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created"),
		}},
	}
}

// EnsureIndexes creates every index from Indexes. Creating an existing index
// with the same definition is a no-op on the server.
func (s *Store) EnsureIndexes(ctx context.Context) ([]string, error) {
	var created []string
	for _, coll := range []string{UsersCollection, OrdersCollection} {
		names, err := s.db.Collection(coll).Indexes().CreateMany(ctx, Indexes()[coll])
		if err != nil {
			return created, fmt.Errorf("database: ensure indexes on %s: %w", coll, err)
		}
		for _, n := range names {
			created = append(created, coll+"."+n)
		}
	}
	return created, nil
}
