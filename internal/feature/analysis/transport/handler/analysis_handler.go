// Package handler serves analysis requests on the analysis service.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/api"
	"stock_sentiment/internal/feature/analysis/domain/entity"
	"stock_sentiment/internal/feature/analysis/usecase"
	"stock_sentiment/internal/shared/authctx"
)

// StatusCompleted is reported in the body of a successful analysis.
const StatusCompleted = "completed"

// AnalysisUsecase runs one analysis request.
type AnalysisUsecase interface {
	AnalyzeTicker(ctx context.Context, userID, ticker string) (*usecase.Result, error)
}

// AnalysisHandler handles POST /analyze/:ticker.
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler creates a new instance of AnalysisHandler.
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Analyze runs the analysis synchronously and answers 202 once the article is stored.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	ticker := c.Param("ticker")
	userID, _ := authctx.UserID(c)

	res, err := h.uc.AnalyzeTicker(c.Request.Context(), userID, ticker)
	if err != nil {
		status, msg := statusFor(err)
		attrs := []any{"error", err, "ticker", ticker, "user_id", userID, "stage", usecase.StageOf(err)}
		if status >= http.StatusInternalServerError {
			slog.Error("analysis failed", attrs...)
		} else {
			slog.Warn("analysis rejected", attrs...)
		}
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	slog.Info("analysis completed", "ticker", res.Ticker, "user_id", userID, "article_id", res.ArticleID)
	c.JSON(http.StatusAccepted, api.AnalyzeAcceptedResponse{
		Status:            StatusCompleted,
		Message:           fmt.Sprintf("Analysis for %s completed", res.Ticker),
		Ticker:            res.Ticker,
		ArticleID:         res.ArticleID,
		RemainingAnalyses: res.RemainingAnalyses,
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidTicker):
		return http.StatusBadRequest, "invalid ticker"
	case errors.Is(err, usecase.ErrLoginRequired):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, usecase.ErrLimitReached):
		return http.StatusTooManyRequests, "daily analysis limit reached"
	case errors.Is(err, usecase.ErrAnalysisFailed):
		return http.StatusBadGateway, "news analysis failed"
	case errors.Is(err, usecase.ErrPersistFailed):
		return http.StatusInternalServerError, "failed to save analysis"
	}
	if usecase.StageOf(err) == entity.StageLimitChecking {
		return http.StatusInternalServerError, "quota store unavailable"
	}
	return http.StatusInternalServerError, "internal server error"
}
