// Command analysis runs news analyses for the web front-end and enforces the daily quota.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock_sentiment/internal/app/config"
	"stock_sentiment/internal/app/di"
	"stock_sentiment/internal/app/router"
	analysishandler "stock_sentiment/internal/feature/analysis/transport/handler"
	analysisusecase "stock_sentiment/internal/feature/analysis/usecase"
	articleusecase "stock_sentiment/internal/feature/articles/usecase"
	quotahandler "stock_sentiment/internal/feature/quota/transport/handler"
	quotausecase "stock_sentiment/internal/feature/quota/usecase"
	"stock_sentiment/internal/platform/cache"
	platformhttp "stock_sentiment/internal/platform/http"
	"stock_sentiment/internal/platform/http/handler"
	"stock_sentiment/internal/platform/logger"
	platformredis "stock_sentiment/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, "analysis")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("analysis service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.ServiceJWTSecret == "" {
		return errors.New("SERVICE_JWT_SECRET is required")
	}

	// Store
	store, err := di.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// New articles must evict the web service's cached listings.
	articleRepo := store.Articles
	if cfg.Redis.Enabled() {
		if rdb, err := platformredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Cached listings expire by TTL only.")
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			articleRepo = cache.NewCachingArticleRepository(rdb, cfg.CacheTTL, store.Articles, "articles")
		}
	}

	analyzer, err := di.NewAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	// Usecase
	quotaUC := quotausecase.NewQuotaUsecase(store.Limits)
	articleUC := articleusecase.NewArticleUsecase(articleRepo)
	analysisUC := analysisusecase.NewAnalysisUsecase(analyzer, quotaUC, articleUC, cfg.AnalysisTimeout)

	// Handler
	r := router.NewAnalysisRouter(router.AnalysisDeps{
		Analysis:  analysishandler.NewAnalysisHandler(analysisUC),
		Limits:    quotahandler.NewLimitHandler(quotaUC),
		Health:    handler.NewHealthHandler(0, handler.Dependency{Name: store.Name, Check: store.Ping}),
		JWTSecret: cfg.ServiceJWTSecret,
	})

	return platformhttp.ListenAndServe(ctx, platformhttp.NewServer(cfg.AnalysisAddr, r, cfg.AnalysisTimeout+30*time.Second))
}
