// Package handler serves the dashboard pages and the analyze proxy of the web front-end.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/api"
	articleentity "stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/dashboard/domain/entity"
	"stock_sentiment/internal/feature/dashboard/usecase"
	"stock_sentiment/internal/shared/authctx"
)

// DashboardUsecase defines the dashboard operations used by the pages.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DashboardUsecase interface {
	Quota(ctx context.Context, userID string) (entity.Quota, error)
	Detail(ctx context.Context, rawTicker string) (string, []articleentity.Article, error)
	History(ctx context.Context, userID string) (*entity.History, error)
	RequestAnalysis(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error)
}

// DashboardHandler serves /, /detail, /history and POST /analyze/:ticker.
type DashboardHandler struct {
	dashboard DashboardUsecase
}

// NewDashboardHandler creates a new instance of DashboardHandler.
func NewDashboardHandler(dashboard DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func page(c *gin.Context, title string, data gin.H) gin.H {
	data["Title"] = title
	if id, ok := authctx.Get(c); ok {
		data["User"] = id
	}
	return data
}

// Index handles GET /. Anonymous visitors see the page without a quota.
func (h *DashboardHandler) Index(c *gin.Context) {
	data := gin.H{}
	if userID, ok := authctx.UserID(c); ok {
		q, err := h.dashboard.Quota(c.Request.Context(), userID)
		if err != nil {
			slog.Warn("failed to read remaining analyses", "error", err, "user_id", userID)
			data["QuotaUnknown"] = true
		} else {
			data["Remaining"] = q.Remaining
			data["DailyLimit"] = q.DailyLimit
		}
	}
	c.HTML(http.StatusOK, "index.html", page(c, "Dashboard", data))
}

// Detail handles GET /detail?ticker=. Without a ticker it redirects to /.
func (h *DashboardHandler) Detail(c *gin.Context) {
	raw := c.Query("ticker")
	if raw == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ticker, articles, err := h.dashboard.Detail(c.Request.Context(), raw)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Analyses could not be loaded."
		if errors.Is(err, usecase.ErrInvalidTicker) {
			status, msg, ticker = http.StatusBadRequest, "Invalid ticker.", raw
		} else {
			slog.Error("failed to load detail", "error", err, "ticker", ticker)
		}
		c.HTML(status, "detail.html", page(c, ticker, gin.H{"Ticker": ticker, "Error": msg}))
		return
	}
	c.HTML(http.StatusOK, "detail.html", page(c, ticker, gin.H{"Ticker": ticker, "Articles": articles}))
}

// History handles GET /history. RequireLogin runs first.
func (h *DashboardHandler) History(c *gin.Context) {
	userID, _ := authctx.UserID(c)
	hist, err := h.dashboard.History(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to load history", "error", err, "user_id", userID)
		c.HTML(http.StatusInternalServerError, "history.html", page(c, "History", gin.H{"Error": "History could not be loaded."}))
		return
	}
	data := gin.H{"Groups": hist.Groups, "QuotaUnknown": hist.Quota == nil}
	if hist.Quota != nil {
		data["Remaining"] = hist.Quota.Remaining
		data["DailyLimit"] = hist.Quota.DailyLimit
	}
	c.HTML(http.StatusOK, "history.html", page(c, "History", data))
}

// Analyze handles POST /analyze/:ticker by proxying to the analysis service.
// - 200 with redirect_to on success
// - 400, 401 and 429 from the service passed through
// - 502 for any other service answer or when the service is unreachable
func (h *DashboardHandler) Analyze(c *gin.Context) {
	id, _ := authctx.Get(c)
	raw := c.Param("ticker")

	out, err := h.dashboard.RequestAnalysis(c.Request.Context(), id.UserID, id.Username, raw)
	if err != nil {
		var upstream *usecase.UpstreamError
		switch {
		case errors.As(err, &upstream):
			c.JSON(upstream.StatusCode, api.ErrorResponse{Error: upstream.Message})
		case errors.Is(err, usecase.ErrInvalidTicker):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid ticker"})
		case errors.Is(err, usecase.ErrServiceUnavailable):
			slog.Error("analysis service unreachable", "error", err, "ticker", raw)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("analysis request failed", "error", err, "ticker", raw)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	slog.Info("analysis completed", "user_id", id.UserID, "ticker", out.Ticker, "remaining", out.RemainingAnalyses)
	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Status:            "completed",
		Message:           out.Message,
		Ticker:            out.Ticker,
		RemainingAnalyses: out.RemainingAnalyses,
		RedirectTo:        out.RedirectTo,
	})
}
