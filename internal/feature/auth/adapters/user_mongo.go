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

// userDocument is the BSON shape of a user in the users collection.
type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Salt         string        `bson:"salt"`
	CreatedAt    time.Time     `bson:"created_at"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Salt:         d.Salt,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// userMongo implements UserRepository on the users collection.
type userMongo struct {
	coll *mongo.Collection
}

var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo creates a repository on coll. The collection must carry the unique
// username and email indexes (see platform/mongo.IndexSpecs).
func NewUserMongo(coll *mongo.Collection) *userMongo {
	return &userMongo{coll: coll}
}

// Create inserts the user; a unique index violation becomes ErrDuplicateUser.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	doc := userDocument{
		ID:           bson.NewObjectID(),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Salt:         u.Salt,
		CreatedAt:    u.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrDuplicateUser
		}
		return err
	}
	u.ID = doc.ID.Hex()
	return nil
}

// FindByUsername returns usecase.ErrUserNotFound when no document matches.
func (r *userMongo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

// FindByID returns usecase.ErrUserNotFound for unknown or malformed ids.
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *userMongo) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
