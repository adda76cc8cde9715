// Package mongo is the document store gateway: one client per process, opened in main,
// closed at shutdown and handed to the adapters that need collections.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	DefaultURI      = "mongodb://localhost:27017/stock_sentiment"
	DefaultDatabase = "stock_sentiment"

	CollectionArticles   = "articles"
	CollectionUsers      = "users"
	CollectionUserLimits = "user_limits"
	CollectionSessions   = "sessions"
)

// Gateway owns the client and the database resolved from the connection string.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
}

// DatabaseName returns the last path segment of uri, or DefaultDatabase.
func DatabaseName(uri string) string {
	rest := uri
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	i := strings.Index(rest, "/")
	if i < 0 {
		return DefaultDatabase
	}
	name := strings.Trim(rest[i+1:], "/")
	if j := strings.LastIndex(name, "/"); j >= 0 {
		name = name[j+1:]
	}
	if name == "" {
		return DefaultDatabase
	}
	return name
}

// Connect opens the client and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*Gateway, error) {
	if uri == "" {
		uri = DefaultURI
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(5 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	g := &Gateway{client: client, db: client.Database(DatabaseName(uri))}
	if err := g.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	slog.Info("mongo connection successful", "database", g.db.Name())
	return g, nil
}

// Database returns the resolved database.
func (g *Gateway) Database() *mongo.Database {
	return g.db
}

// WithDatabase returns a gateway sharing the client but bound to another database.
func (g *Gateway) WithDatabase(name string) *Gateway {
	return &Gateway{client: g.client, db: g.client.Database(name)}
}

// Collection returns a named collection of the resolved database.
func (g *Gateway) Collection(name string) *mongo.Collection {
	return g.db.Collection(name)
}

// Ping checks the primary.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (g *Gateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}

// IndexSpecs lists the indexes every collection needs. Uniqueness of usernames,
// emails and (user_id, date) is enforced here, not in application code.
func IndexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionUserLimits: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionArticles: {
			{Keys: bson.D{{Key: "ticker", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CollectionSessions: {
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}
}

// EnsureIndexes creates the indexes from IndexSpecs. Existing identical indexes are a no-op.
func (g *Gateway) EnsureIndexes(ctx context.Context) error {
	for coll, models := range IndexSpecs() {
		if _, err := g.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
