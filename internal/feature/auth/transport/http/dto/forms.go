// Package dto defines the form payloads of the auth pages.
package dto

// LoginForm is posted by the login page.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// RegisterForm is posted by the registration page. Field rules beyond presence are
// enforced by the usecase so the page and any other caller share them.
type RegisterForm struct {
	Username        string `form:"username" binding:"required"`
	Email           string `form:"email" binding:"required"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}
