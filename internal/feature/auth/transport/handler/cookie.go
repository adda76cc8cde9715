package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the session cookie.
const DefaultCookieName = "session_id"

// SessionCookie writes and clears the session cookie.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (sc SessionCookie) name() string {
	if sc.Name == "" {
		return DefaultCookieName
	}
	return sc.Name
}

// Set stores the session id as an HttpOnly, SameSite=Lax cookie.
func (sc SessionCookie) Set(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.name(), id, int(sc.TTL.Seconds()), "/", "", sc.Secure, true)
}

// Clear expires the cookie in the browser.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.name(), "", -1, "/", "", sc.Secure, true)
}

// Read returns the session id sent by the browser.
func (sc SessionCookie) Read(c *gin.Context) string {
	v, err := c.Cookie(sc.name())
	if err != nil {
		return ""
	}
	return v
}

// SafeNext keeps only same-site absolute paths and falls back to "/".
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// LoginURL is the login page that returns to next afterwards.
func LoginURL(next string) string {
	next = SafeNext(next)
	if next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}
