// Package handler provides the HTTP handlers of the auth feature: login, registration,
// logout and the session middleware.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/transport/http/dto"
	"stock_sentiment/internal/feature/auth/usecase"
	"stock_sentiment/internal/shared/authctx"
)

// AuthUsecase defines the account operations used by the pages.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	CreateUser(ctx context.Context, username, email, password string) (*entity.UserPublic, error)
	AuthenticateUser(ctx context.Context, username, password string) (*entity.UserPublic, error)
}

// SessionUsecase creates and ends sessions.
type SessionUsecase interface {
	CreateSession(ctx context.Context, user *entity.UserPublic) (*entity.Session, error)
	InvalidateSession(ctx context.Context, id string) error
}

// AuthHandler serves the login, registration and logout pages.
type AuthHandler struct {
	auth     AuthUsecase
	sessions SessionUsecase
	cookie   SessionCookie
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase, sessions SessionUsecase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookie: cookie}
}

func page(c *gin.Context, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if id, ok := authctx.Get(c); ok {
		data["User"] = id
	}
	return data
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := authctx.UserID(c); ok {
		c.Redirect(http.StatusSeeOther, SafeNext(c.Query("next")))
		return
	}
	c.HTML(http.StatusOK, "login.html", page(c, "Log in", gin.H{"Next": SafeNext(c.Query("next"))}))
}

// Login handles POST /login.
// - 400 when a field is missing
// - 401 when the credentials do not match
// - 303 to the requested page with a session cookie on success
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusBadRequest, "login.html", page(c, "Log in", gin.H{
			"Error": "Username and password are required.", "Next": SafeNext(form.Next), "Username": form.Username,
		}))
		return
	}

	user, err := h.auth.AuthenticateUser(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		status, msg := http.StatusInternalServerError, "Login is unavailable, please try again."
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			status, msg = http.StatusUnauthorized, "Invalid username or password."
			// do not reveal whether the username exists
			slog.Warn("login failed", "username", form.Username, "remote_addr", c.ClientIP())
		} else {
			slog.Error("login error", "error", err, "username", form.Username)
		}
		c.HTML(status, "login.html", page(c, "Log in", gin.H{"Error": msg, "Next": SafeNext(form.Next), "Username": form.Username}))
		return
	}

	if !h.startSession(c, user) {
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, SafeNext(form.Next))
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if _, ok := authctx.UserID(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", page(c, "Register", nil))
}

// Register handles POST /register.
// - 400 for missing fields, mismatching passwords or invalid values
// - 409 when the username or email is taken
// - 303 to the dashboard, logged in, on success
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	render := func(status int, msg string) {
		c.HTML(status, "register.html", page(c, "Register", gin.H{"Error": msg, "Username": form.Username, "Email": form.Email}))
	}

	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		render(http.StatusBadRequest, "All fields are required.")
		return
	}
	if form.Password != form.ConfirmPassword {
		render(http.StatusBadRequest, "Passwords do not match.")
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateUser):
			slog.Warn("register failed: duplicate", "username", form.Username, "remote_addr", c.ClientIP())
			render(http.StatusConflict, "Username or email is already registered.")
		case errors.Is(err, usecase.ErrInvalidUsername), errors.Is(err, usecase.ErrInvalidEmail), errors.Is(err, usecase.ErrPasswordTooShort):
			render(http.StatusBadRequest, err.Error())
		default:
			slog.Error("register error", "error", err, "username", form.Username)
			render(http.StatusInternalServerError, "Registration is unavailable, please try again.")
		}
		return
	}

	if !h.startSession(c, user) {
		return
	}
	slog.Info("user registered", "user_id", user.ID, "username", user.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout. It always ends with a cleared cookie and a redirect home.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id := h.cookie.Read(c); id != "" {
		if err := h.sessions.InvalidateSession(c.Request.Context(), id); err != nil {
			slog.Warn("failed to invalidate session", "error", err)
		}
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, user *entity.UserPublic) bool {
	s, err := h.sessions.CreateSession(c.Request.Context(), user)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", user.ID)
		c.String(http.StatusInternalServerError, "failed to create session")
		return false
	}
	h.cookie.Set(c, s.ID)
	return true
}
