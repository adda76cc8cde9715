package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/api"
	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/usecase"
	"stock_sentiment/internal/shared/authctx"
)

// SessionLookup resolves a session cookie.
type SessionLookup interface {
	LookupSession(ctx context.Context, id string) (*entity.Session, error)
}

// LoadSession puts the session user, if any, into authctx. Requests without a valid
// session continue anonymously.
func LoadSession(sessions SessionLookup, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cookie.Read(c)
		if id == "" {
			c.Next()
			return
		}

		s, err := sessions.LookupSession(c.Request.Context(), id)
		switch {
		case err == nil:
			authctx.Set(c, authctx.Identity{UserID: s.User.ID, Username: s.User.Username, Email: s.User.Email})
		case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrSessionExpired):
			cookie.Clear(c)
		default:
			slog.Warn("session lookup failed", "error", err, "remote_addr", c.ClientIP())
		}
		c.Next()
	}
}

// RequireLogin stops anonymous requests. Browsers navigating to a page are sent to
// the login page; API and fetch callers get 401 JSON with the login URL.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authctx.UserID(c); ok {
			c.Next()
			return
		}

		next := c.Request.URL.RequestURI()
		if WantsJSON(c) {
			// a script cannot resume a POST after logging in
			if c.Request.Method != http.MethodGet {
				next = "/"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.LoginRequiredResponse{
				Error:      "login required",
				RedirectTo: LoginURL(next),
			})
			return
		}
		c.Redirect(http.StatusSeeOther, LoginURL(next))
		c.Abort()
	}
}

// WantsJSON reports whether the caller is a script rather than a page navigation.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
		return true
	}
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
