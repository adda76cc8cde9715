package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	articleentity "stock_sentiment/internal/feature/articles/domain/entity"
	articleusecase "stock_sentiment/internal/feature/articles/usecase"
	"stock_sentiment/internal/feature/dashboard/domain/entity"
)

// AnalysisService sends analysis requests to the analysis service.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AnalysisService interface {
	RequestAnalysis(ctx context.Context, req entity.AnalysisRequest) (*entity.AnalysisReply, error)
}

// QuotaReader reads a user's remaining analyses.
type QuotaReader interface {
	GetRemainingAnalyses(ctx context.Context, userID string) (int, error)
	DailyLimit() int
}

// ArticleReader reads stored analyses.
type ArticleReader interface {
	GetArticlesByTicker(ctx context.Context, ticker string) ([]articleentity.Article, error)
	GetUserHistory(ctx context.Context, userID string) ([]articleentity.TickerGroup, error)
}

type dashboardUsecase struct {
	service  AnalysisService
	quota    QuotaReader
	articles ArticleReader
}

// NewDashboardUsecase creates a new instance of dashboardUsecase.
func NewDashboardUsecase(service AnalysisService, quota QuotaReader, articles ArticleReader) *dashboardUsecase {
	return &dashboardUsecase{service: service, quota: quota, articles: articles}
}

// Quota returns the user's allowance for today.
func (u *dashboardUsecase) Quota(ctx context.Context, userID string) (entity.Quota, error) {
	remaining, err := u.quota.GetRemainingAnalyses(ctx, userID)
	if err != nil {
		return entity.Quota{}, err
	}
	return entity.Quota{Remaining: remaining, DailyLimit: u.quota.DailyLimit()}, nil
}

// Detail returns the normalized ticker and its analyses, newest first.
func (u *dashboardUsecase) Detail(ctx context.Context, rawTicker string) (string, []articleentity.Article, error) {
	ticker, err := articleusecase.ValidateTicker(rawTicker)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidTicker, rawTicker)
	}
	articles, err := u.articles.GetArticlesByTicker(ctx, ticker)
	if err != nil {
		return ticker, nil, err
	}
	return ticker, articles, nil
}

// History groups the user's analyses by ticker. A quota read failure is logged and
// leaves History.Quota nil rather than hiding the history.
func (u *dashboardUsecase) History(ctx context.Context, userID string) (*entity.History, error) {
	groups, err := u.articles.GetUserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	hist := &entity.History{Groups: groups}
	quota, err := u.Quota(ctx, userID)
	if err != nil {
		slog.Warn("failed to read remaining analyses", "error", err, "user_id", userID)
		return hist, nil
	}
	hist.Quota = &quota
	return hist, nil
}

// RequestAnalysis asks the analysis service to analyze a ticker for the user.
// - ErrInvalidTicker when the ticker is malformed, without calling the service
// - ErrServiceUnavailable when the service cannot be reached
// - *UpstreamError with 400, 401 or 429 passed through, anything else as 502
func (u *dashboardUsecase) RequestAnalysis(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
	ticker, err := articleusecase.ValidateTicker(rawTicker)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTicker, rawTicker)
	}

	reply, err := u.service.RequestAnalysis(ctx, entity.AnalysisRequest{UserID: userID, Username: username, Ticker: ticker})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	switch reply.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		if reply.Ticker != "" {
			ticker = reply.Ticker
		}
		return &entity.AnalysisOutcome{
			Ticker:            ticker,
			Message:           reply.Message,
			RemainingAnalyses: reply.RemainingAnalyses,
			RedirectTo:        "/detail?ticker=" + url.QueryEscape(ticker),
		}, nil
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests:
		msg := reply.Error
		if msg == "" {
			msg = http.StatusText(reply.StatusCode)
		}
		return nil, &UpstreamError{StatusCode: reply.StatusCode, Message: msg}
	default:
		slog.Error("analysis service error", "status", reply.StatusCode, "error", reply.Error, "ticker", ticker)
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "LLM service error"}
	}
}
