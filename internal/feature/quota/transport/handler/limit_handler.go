// Package handler exposes the quota over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/api"
	"stock_sentiment/internal/shared/authctx"
)

// QuotaUsecase is the read side of the quota.
type QuotaUsecase interface {
	GetRemainingAnalyses(ctx context.Context, userID string) (int, error)
	DailyLimit() int
	ResetsIn() time.Duration
}

// LimitHandler serves the caller's remaining analyses.
type LimitHandler struct {
	quota QuotaUsecase
}

// NewLimitHandler creates a new instance of LimitHandler.
func NewLimitHandler(quota QuotaUsecase) *LimitHandler {
	return &LimitHandler{quota: quota}
}

// Remaining handles GET /limits/remaining. The caller must be authenticated.
func (h *LimitHandler) Remaining(c *gin.Context) {
	userID, ok := authctx.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "login required"})
		return
	}

	remaining, err := h.quota.GetRemainingAnalyses(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to read remaining analyses", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read remaining analyses"})
		return
	}

	c.JSON(http.StatusOK, api.RemainingAnalysesResponse{
		RemainingAnalyses: remaining,
		DailyLimit:        h.quota.DailyLimit(),
		ResetsInSeconds:   int64(h.quota.ResetsIn().Seconds()),
	})
}
