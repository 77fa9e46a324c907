package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/thedosaspot/dosaspot/pkg/ctx"
	"github.com/thedosaspot/dosaspot/pkg/logger"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HomeController struct {
	db Pinger
}

func NewHomeController(db Pinger) *HomeController {
	return &HomeController{db: db}
}

func (h *HomeController) Index(c *ctx.Context) {
	c.Message("Dosa Point API is running")
}

// Health returns 200 {"status":"ok"} while the database answers, 503 otherwise.
func (h *HomeController) Health(c *ctx.Context) {
	pctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(pctx); err != nil {
		logger.WithCtx(c.Context()).Warn("health check failed", "error", err)
		c.Raw(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	c.Raw(http.StatusOK, map[string]string{"status": "ok"})
}
