// Package handler provides HTTP handlers for platform level endpoints.
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	Reachable   = "reachable"
	Unreachable = "unreachable"

	defaultCheckTimeout = 2 * time.Second
)

// Dependency is one checked backend. Name becomes the key in the response body.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves /healthz. It always answers 200 so monitors can tell a live
// process from a live dependency; a failing check only turns the status to "degraded".
type HealthHandler struct {
	deps    []Dependency
	timeout time.Duration
}

// NewHealthHandler builds a handler checking dependencies concurrently with a shared timeout.
func NewHealthHandler(timeout time.Duration, deps ...Dependency) *HealthHandler {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	return &HealthHandler{deps: deps, timeout: timeout}
}

// Health handles GET/HEAD/OPTIONS on /healthz and never caches.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, h.Report(c.Request.Context()))
}

// Report checks every dependency and returns the response body.
func (h *HealthHandler) Report(ctx context.Context) gin.H {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var mu sync.Mutex
	body := gin.H{"status": StatusOK}

	// Check failures are recorded, not returned, so the group never cancels early.
	var g errgroup.Group
	for _, d := range h.deps {
		g.Go(func() error {
			state := Reachable
			if err := d.Check(ctx); err != nil {
				state = Unreachable
			}
			mu.Lock()
			defer mu.Unlock()
			body[d.Name] = state
			if state == Unreachable {
				body["status"] = StatusDegraded
			}
			return nil
		})
	}
	_ = g.Wait()

	return body
}
