// Command web serves the dashboard pages, session login and the analyze proxy.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_sentiment/internal/app/config"
	"stock_sentiment/internal/app/di"
	"stock_sentiment/internal/app/router"
	articlehandler "stock_sentiment/internal/feature/articles/transport/handler"
	articleusecase "stock_sentiment/internal/feature/articles/usecase"
	authhandler "stock_sentiment/internal/feature/auth/transport/handler"
	authusecase "stock_sentiment/internal/feature/auth/usecase"
	"stock_sentiment/internal/feature/dashboard/adapters/analysisclient"
	dashboardhandler "stock_sentiment/internal/feature/dashboard/transport/handler"
	dashboardusecase "stock_sentiment/internal/feature/dashboard/usecase"
	quotahandler "stock_sentiment/internal/feature/quota/transport/handler"
	quotausecase "stock_sentiment/internal/feature/quota/usecase"
	"stock_sentiment/internal/platform/cache"
	platformhttp "stock_sentiment/internal/platform/http"
	"stock_sentiment/internal/platform/http/handler"
	jwtmw "stock_sentiment/internal/platform/jwt"
	"stock_sentiment/internal/platform/logger"
	platformredis "stock_sentiment/internal/platform/redis"
)

const janitorInterval = 15 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, "web")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("web service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.ServiceJWTSecret == "" {
		slog.Warn("SERVICE_JWT_SECRET is not set; the analysis service will reject every request")
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

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache and with store sessions.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	sessionRepo := di.NewSessionRepository(rdb, store)
	go di.RunSessionJanitor(ctx, sessionRepo, janitorInterval)
	articleRepo := store.Articles
	if rdb != nil {
		articleRepo = cache.NewCachingArticleRepository(rdb, cfg.CacheTTL, store.Articles, "articles")
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(store.Users)
	sessionUC := authusecase.NewSessionUsecase(sessionRepo, cfg.SessionTTL)
	quotaUC := quotausecase.NewQuotaUsecase(store.Limits)
	articleUC := articleusecase.NewArticleUsecase(articleRepo)
	client := analysisclient.New(
		cfg.AnalysisServiceURL,
		platformhttp.NewHTTPClient(cfg.ProxyTimeout()),
		jwtmw.NewGenerator(cfg.ServiceJWTSecret, cfg.ServiceTokenTTL),
	)
	dashboardUC := dashboardusecase.NewDashboardUsecase(client, quotaUC, articleUC)

	// Handler
	cookie := authhandler.SessionCookie{Name: authhandler.DefaultCookieName, Secure: cfg.CookieSecure, TTL: sessionUC.TTL()}
	health := handler.NewHealthHandler(0,
		handler.Dependency{Name: store.Name, Check: store.Ping},
		handler.Dependency{Name: "llm_service", Check: client.Ping},
	)
	r := router.NewWebRouter(router.WebDeps{
		Auth:        authhandler.NewAuthHandler(authUC, sessionUC, cookie),
		Dashboard:   dashboardhandler.NewDashboardHandler(dashboardUC),
		Articles:    articlehandler.NewArticleHandler(articleUC),
		Limits:      quotahandler.NewLimitHandler(quotaUC),
		Health:      health,
		Sessions:    sessionUC,
		Cookie:      cookie,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	return platformhttp.ListenAndServe(ctx, platformhttp.NewServer(cfg.WebAddr, r, cfg.ProxyTimeout()+10*time.Second))
}
