package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"stock_sentiment/internal/feature/quota/domain/entity"
	"stock_sentiment/internal/feature/quota/usecase"
)

type limitDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"user_id"`
	Date      time.Time     `bson:"date"`
	Count     int           `bson:"count"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

type limitMongo struct {
	coll *mongo.Collection
}

// Compile-time check to ensure limitMongo implements LimitRepository.
var _ usecase.LimitRepository = (*limitMongo)(nil)

// NewLimitMongo expects coll to carry the unique (user_id, date) index.
func NewLimitMongo(coll *mongo.Collection) *limitMongo {
	return &limitMongo{coll: coll}
}

func dayFilter(userID string, day time.Time) bson.D {
	return bson.D{
		{Key: "user_id", Value: userID},
		{Key: "date", Value: entity.DayStart(day)},
	}
}

func incrementFilter(userID string, day time.Time, limit int) bson.D {
	return append(dayFilter(userID, day), bson.E{Key: "count", Value: bson.D{{Key: "$lt", Value: limit}}})
}

func incrementUpdate(now time.Time) bson.D {
	return bson.D{
		{Key: "$inc", Value: bson.D{{Key: "count", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}
}

// IncrementIfBelow runs a conditional upsert. A capped record does not match the
// filter, so the upsert tries to insert a second (user_id, date) document and the
// unique index rejects it. That duplicate key error is also what the loser of a
// first-insert race sees, so it is retried once without upsert.
func (r *limitMongo) IncrementIfBelow(ctx context.Context, userID string, day time.Time, limit int, now time.Time) (int, bool, error) {
	filter := incrementFilter(userID, day, limit)
	update := incrementUpdate(now)

	var doc limitDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.Count, true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return 0, false, err
	}

	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return limit, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return doc.Count, true, nil
}

// CountFor returns today's count, 0 when the user has no record.
func (r *limitMongo) CountFor(ctx context.Context, userID string, day time.Time) (int, error) {
	var doc limitDocument
	err := r.coll.FindOne(ctx, dayFilter(userID, day)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Count, nil
}

// Decrement lowers the count by one, never below zero.
func (r *limitMongo) Decrement(ctx context.Context, userID string, day time.Time, now time.Time) error {
	filter := append(dayFilter(userID, day), bson.E{Key: "count", Value: bson.D{{Key: "$gt", Value: 0}}})
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "count", Value: -1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}
