// Package router assembles the gin engines of the web and analysis services.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "stock_sentiment/internal/feature/analysis/transport/handler"
	articlehandler "stock_sentiment/internal/feature/articles/transport/handler"
	authhandler "stock_sentiment/internal/feature/auth/transport/handler"
	dashboardhandler "stock_sentiment/internal/feature/dashboard/transport/handler"
	quotahandler "stock_sentiment/internal/feature/quota/transport/handler"
	platformhttp "stock_sentiment/internal/platform/http"
	"stock_sentiment/internal/platform/http/handler"
	jwtmw "stock_sentiment/internal/platform/jwt"
	"stock_sentiment/internal/platform/web"
)

// WebDeps are the handlers and middleware inputs of the web front-end.
type WebDeps struct {
	Auth        *authhandler.AuthHandler
	Dashboard   *dashboardhandler.DashboardHandler
	Articles    *articlehandler.ArticleHandler
	Limits      *quotahandler.LimitHandler
	Health      *handler.HealthHandler
	Sessions    authhandler.SessionLookup
	Cookie      authhandler.SessionCookie
	CORSOrigins []string
}

// NewWebRouter serves the pages, the analyze proxy and the JSON listings.
func NewWebRouter(d WebDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), platformhttp.RequestLogger())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(web.MustTemplates())

	// No session needed
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)

	// Every other route sees the session user, if any
	s := r.Group("/")
	s.Use(authhandler.LoadSession(d.Sessions, d.Cookie))
	{
		s.GET("/", d.Dashboard.Index)
		s.GET("/detail", d.Dashboard.Detail)
		s.GET("/login", d.Auth.LoginPage)
		s.POST("/login", d.Auth.Login)
		s.GET("/register", d.Auth.RegisterPage)
		s.POST("/register", d.Auth.Register)
		s.GET("/logout", d.Auth.Logout)
		s.GET("/articles/:ticker", d.Articles.ByTicker)
		s.GET("/api/trending", d.Articles.Trending)
	}

	auth := s.Group("/")
	auth.Use(authhandler.RequireLogin())
	{
		auth.GET("/history", d.Dashboard.History)
		auth.POST("/analyze/:ticker", d.Dashboard.Analyze)
		auth.GET("/api/user/remaining-analyses", d.Limits.Remaining)
	}

	return r
}

// AnalysisDeps are the handlers of the analysis service.
type AnalysisDeps struct {
	Analysis  *analysishandler.AnalysisHandler
	Limits    *quotahandler.LimitHandler
	Health    *handler.HealthHandler
	JWTSecret string
}

// NewAnalysisRouter serves the analysis API. Everything but /healthz needs a service token.
func NewAnalysisRouter(d AnalysisDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), platformhttp.RequestLogger())

	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(d.JWTSecret))
	{
		auth.POST("/analyze/:ticker", d.Analysis.Analyze)
		auth.GET("/limits/remaining", d.Limits.Remaining)
	}

	return r
}
