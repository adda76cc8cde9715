package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/usecase"
)

// sessionDocument is stored in the sessions collection; a TTL index on expires_at
// lets the server purge expired documents.
type sessionDocument struct {
	ID        string            `bson:"_id"`
	User      entity.UserPublic `bson:"user"`
	CreatedAt time.Time         `bson:"created_at"`
	ExpiresAt time.Time         `bson:"expires_at"`
}

// sessionMongo is the document-store SessionRepository used when Redis is not configured.
type sessionMongo struct {
	coll *mongo.Collection
}

var _ usecase.SessionRepository = (*sessionMongo)(nil)

// NewSessionMongo creates a repository on coll.
func NewSessionMongo(coll *mongo.Collection) *sessionMongo {
	return &sessionMongo{coll: coll}
}

// Create persists a new session.
func (r *sessionMongo) Create(ctx context.Context, s *entity.Session) error {
	_, err := r.coll.InsertOne(ctx, sessionDocument{
		ID:        s.ID,
		User:      s.User,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
	return err
}

// FindByID retrieves an unexpired session. The TTL monitor runs about once a
// minute, so expiry is also checked in the filter.
func (r *sessionMongo) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: time.Now().UTC()}}},
	}
	var doc sessionDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	doc.User.CreatedAt = doc.User.CreatedAt.UTC()
	return &entity.Session{
		ID:        doc.ID,
		User:      doc.User,
		CreatedAt: doc.CreatedAt.UTC(),
		ExpiresAt: doc.ExpiresAt.UTC(),
	}, nil
}

// Delete removes a session by token.
func (r *sessionMongo) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
