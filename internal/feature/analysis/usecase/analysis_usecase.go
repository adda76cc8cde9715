// Package usecase orchestrates one analysis request from authorization to persistence.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stock_sentiment/internal/feature/analysis/domain/entity"
	articleentity "stock_sentiment/internal/feature/articles/domain/entity"
	articleusecase "stock_sentiment/internal/feature/articles/usecase"
	quotaentity "stock_sentiment/internal/feature/quota/domain/entity"
)

// DefaultTimeout bounds the analyzing stage.
const DefaultTimeout = 90 * time.Second

// NewsAnalyzer produces a NewsAnalysis for a ticker. Implementations call external
// services and may take tens of seconds.
type NewsAnalyzer interface {
	Analyze(ctx context.Context, ticker string) (*entity.NewsAnalysis, error)
}

// QuotaService reserves and gives back daily analysis slots.
type QuotaService interface {
	Reserve(ctx context.Context, userID string) (quotaentity.Reservation, error)
	Release(ctx context.Context, res quotaentity.Reservation) error
}

// ArticleWriter persists finished analyses.
type ArticleWriter interface {
	CreateArticle(ctx context.Context, ticker, sentiment, summary, analysis, userID string) (*articleentity.Article, error)
}

// Result is what a successful request responds with.
type Result struct {
	Ticker            string
	ArticleID         string
	RemainingAnalyses int
	Analysis          *entity.NewsAnalysis
}

type analysisUsecase struct {
	analyzer NewsAnalyzer
	quota    QuotaService
	articles ArticleWriter
	timeout  time.Duration
}

// NewAnalysisUsecase creates the orchestrator. timeout <= 0 means DefaultTimeout.
func NewAnalysisUsecase(analyzer NewsAnalyzer, quota QuotaService, articles ArticleWriter, timeout time.Duration) *analysisUsecase {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &analysisUsecase{analyzer: analyzer, quota: quota, articles: articles, timeout: timeout}
}

// AnalyzeTicker runs received -> authorizing -> limit_checking -> analyzing ->
// persisting -> responding. A slot is reserved before the model is called and
// released again when analyzing or persisting fails, so only successful analyses
// count against the daily limit. Nothing is persisted before the model answered.
func (u *analysisUsecase) AnalyzeTicker(ctx context.Context, userID, rawTicker string) (*Result, error) {
	stage := entity.StageReceived
	ticker, err := articleusecase.ValidateTicker(rawTicker)
	if err != nil {
		return nil, u.fail(stage, ticker, fmt.Errorf("%w: %q", ErrInvalidTicker, rawTicker))
	}

	stage = u.advance(entity.StageAuthorizing, ticker)
	if userID == "" {
		return nil, u.fail(stage, ticker, ErrLoginRequired)
	}

	stage = u.advance(entity.StageLimitChecking, ticker)
	res, err := u.quota.Reserve(ctx, userID)
	if err != nil {
		return nil, u.fail(stage, ticker, err)
	}
	if !res.Allowed {
		return nil, u.fail(stage, ticker, ErrLimitReached)
	}

	stage = u.advance(entity.StageAnalyzing, ticker)
	actx, cancel := context.WithTimeout(ctx, u.timeout)
	analysis, err := u.analyzer.Analyze(actx, ticker)
	cancel()
	if err != nil {
		u.release(ctx, res)
		return nil, u.fail(stage, ticker, fmt.Errorf("%w: %w", ErrAnalysisFailed, err))
	}

	stage = u.advance(entity.StagePersisting, ticker)
	article, err := u.articles.CreateArticle(ctx, ticker, analysis.OverallSentiment, analysis.Summary, analysis.Analysis, userID)
	if err != nil {
		u.release(ctx, res)
		return nil, u.fail(stage, ticker, fmt.Errorf("%w: %w", ErrPersistFailed, err))
	}

	u.advance(entity.StageResponding, ticker)
	return &Result{
		Ticker:            ticker,
		ArticleID:         article.ID,
		RemainingAnalyses: res.Remaining,
		Analysis:          analysis,
	}, nil
}

func (u *analysisUsecase) advance(stage entity.Stage, ticker string) entity.Stage {
	slog.Debug("analysis stage", "stage", stage, "ticker", ticker)
	return stage
}

func (u *analysisUsecase) fail(stage entity.Stage, ticker string, err error) error {
	slog.Debug("analysis stage", "stage", entity.StageFailed, "failed_at", stage, "ticker", ticker, "error", err)
	return &StageError{Stage: stage, Err: err}
}

// release runs even if the request context is already done.
func (u *analysisUsecase) release(ctx context.Context, res quotaentity.Reservation) {
	if err := u.quota.Release(context.WithoutCancel(ctx), res); err != nil {
		slog.Error("failed to release analysis slot", "error", err, "user_id", res.UserID)
	}
}
