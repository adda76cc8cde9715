package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"stock_sentiment/internal/app/config"
	articleadapters "stock_sentiment/internal/feature/articles/adapters"
	articleusecase "stock_sentiment/internal/feature/articles/usecase"
	authadapters "stock_sentiment/internal/feature/auth/adapters"
	authusecase "stock_sentiment/internal/feature/auth/usecase"
	quotaadapters "stock_sentiment/internal/feature/quota/adapters"
	quotausecase "stock_sentiment/internal/feature/quota/usecase"
	platformdb "stock_sentiment/internal/platform/db"
	platformmongo "stock_sentiment/internal/platform/mongo"
)

// Store holds the repositories of the configured backend.
type Store struct {
	Name     string
	Users    authusecase.UserRepository
	Sessions authusecase.SessionRepository
	Limits   quotausecase.LimitRepository
	Articles articleusecase.ArticleRepository

	mongo *platformmongo.Gateway
	db    *gorm.DB
}

// OpenStore connects to the backend named by cfg.StoreDriver: MongoDB by default,
// postgres or sqlite through gorm.
func OpenStore(ctx context.Context, cfg config.Config) (*Store, error) {
	if cfg.UsesMongo() {
		return openMongoStore(ctx, cfg.MongoURI)
	}
	return openGormStore(cfg.DB)
}

func openMongoStore(ctx context.Context, uri string) (*Store, error) {
	gw, err := platformmongo.Connect(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := gw.EnsureIndexes(ctx); err != nil {
		_ = gw.Close(ctx)
		return nil, err
	}
	return NewMongoStore(gw), nil
}

// NewMongoStore wires the mongo adapters onto an open gateway.
func NewMongoStore(gw *platformmongo.Gateway) *Store {
	return &Store{
		Name:     "mongo",
		Users:    authadapters.NewUserMongo(gw.Collection(platformmongo.CollectionUsers)),
		Sessions: authadapters.NewSessionMongo(gw.Collection(platformmongo.CollectionSessions)),
		Limits:   quotaadapters.NewLimitMongo(gw.Collection(platformmongo.CollectionUserLimits)),
		Articles: articleadapters.NewArticleMongo(gw.Collection(platformmongo.CollectionArticles)),
		mongo:    gw,
	}
}

func openGormStore(cfg platformdb.Config) (*Store, error) {
	db, err := platformdb.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = platformdb.Close(db)
		return nil, err
	}
	return NewGormStore(db, cfg.Driver), nil
}

// Migrate creates or updates every relational table.
func Migrate(db *gorm.DB) error {
	var models []any
	models = append(models, authadapters.Models()...)
	models = append(models, quotaadapters.Models()...)
	models = append(models, articleadapters.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// NewGormStore wires the gorm adapters onto an open connection.
func NewGormStore(db *gorm.DB, name string) *Store {
	return &Store{
		Name:     name,
		Users:    authadapters.NewUserGorm(db),
		Sessions: authadapters.NewSessionGorm(db),
		Limits:   quotaadapters.NewLimitGorm(db),
		Articles: articleadapters.NewArticleGorm(db),
		db:       db,
	}
}

// Ping checks the backend; it serves as the health check.
func (s *Store) Ping(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Ping(ctx)
	}
	return platformdb.Ping(s.db)
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Close(ctx)
	}
	return platformdb.Close(s.db)
}

// sessionSweeper is implemented by session stores that do not expire rows on their own.
type sessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// RunSessionJanitor deletes expired relational sessions every interval until ctx ends.
// Redis keys and the Mongo TTL index expire by themselves, so other stores return at once.
func RunSessionJanitor(ctx context.Context, sessions authusecase.SessionRepository, interval time.Duration) {
	sweeper, ok := sessions.(sessionSweeper)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sweeper.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("failed to delete expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("deleted expired sessions", "count", n)
			}
		}
	}
}
