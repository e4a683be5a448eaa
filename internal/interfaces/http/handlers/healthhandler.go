package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "ok",
		"version": h.version,
	})
}
