package adapters

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/articles/usecase"
)

type articleDocument struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	Ticker           string        `bson:"ticker"`
	OverallSentiment string        `bson:"overall_sentiment"`
	Summary          string        `bson:"summary"`
	Analysis         string        `bson:"analysis"`
	UserID           string        `bson:"user_id,omitempty"`
	CreatedAt        time.Time     `bson:"created_at"`
}

func (d *articleDocument) toEntity() entity.Article {
	return entity.Article{
		ID:               d.ID.Hex(),
		Ticker:           d.Ticker,
		OverallSentiment: entity.Sentiment(d.OverallSentiment),
		Summary:          d.Summary,
		Analysis:         d.Analysis,
		UserID:           d.UserID,
		CreatedAt:        d.CreatedAt.UTC(),
	}
}

type articleMongo struct {
	coll *mongo.Collection
}

// Compile-time check to ensure articleMongo implements ArticleRepository.
var _ usecase.ArticleRepository = (*articleMongo)(nil)

// NewArticleMongo creates a new instance of articleMongo.
func NewArticleMongo(coll *mongo.Collection) *articleMongo {
	return &articleMongo{coll: coll}
}

// Create inserts a and assigns the generated ObjectID as its hex id.
func (r *articleMongo) Create(ctx context.Context, a *entity.Article) error {
	doc := articleDocument{
		ID:               bson.NewObjectID(),
		Ticker:           a.Ticker,
		OverallSentiment: string(a.OverallSentiment),
		Summary:          a.Summary,
		Analysis:         a.Analysis,
		UserID:           a.UserID,
		CreatedAt:        a.CreatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (r *articleMongo) FindByTicker(ctx context.Context, ticker string) ([]entity.Article, error) {
	return r.find(ctx, bson.D{{Key: "ticker", Value: ticker}}, 0)
}

func (r *articleMongo) FindByUser(ctx context.Context, userID string, limit int) ([]entity.Article, error) {
	return r.find(ctx, bson.D{{Key: "user_id", Value: userID}}, limit)
}

func (r *articleMongo) FindTrending(ctx context.Context, since time.Time, limit int) ([]entity.Article, error) {
	return r.find(ctx, trendingFilter(since), limit)
}

func trendingFilter(since time.Time) bson.D {
	if since.IsZero() {
		return bson.D{}
	}
	return bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since.UTC()}}}}
}

func (r *articleMongo) find(ctx context.Context, filter bson.D, limit int) ([]entity.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []articleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Article, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}
