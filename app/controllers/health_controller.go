package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/servicehub/pkg/ctx"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store   Pinger
	timeout time.Duration
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store, timeout: 2 * time.Second}
}

// Show handles GET /healthz.
func (h *HealthController) Show(c *ctx.Context) {
	pctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(pctx); err != nil {
		c.Log().Warn("health check failed", "error", err)
		c.Error(http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	c.OK(nil)
}
