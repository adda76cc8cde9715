// Package authctx stores the authenticated caller on a gin context. The session
// middleware (web) and the service token middleware (analysis) both write here.
package authctx

import "github.com/gin-gonic/gin"

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextEmail    = "email"
)

// Identity is the caller as seen by handlers.
type Identity struct {
	UserID   string
	Username string
	Email    string
}

// Set stores id on c.
func Set(c *gin.Context, id Identity) {
	c.Set(ContextUserID, id.UserID)
	c.Set(ContextUsername, id.Username)
	c.Set(ContextEmail, id.Email)
}

// UserID returns the authenticated user id, or "" and false.
func UserID(c *gin.Context) (string, bool) {
	v := c.GetString(ContextUserID)
	return v, v != ""
}

// Get returns the full identity when a user is authenticated.
func Get(c *gin.Context) (Identity, bool) {
	id, ok := UserID(c)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID:   id,
		Username: c.GetString(ContextUsername),
		Email:    c.GetString(ContextEmail),
	}, true
}
