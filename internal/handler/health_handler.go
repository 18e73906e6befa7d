package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moremori/moremori-api/internal/database"
	"github.com/moremori/moremori-api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	db *database.Pair
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *database.Pair) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth responds with service and database status. The read handle is
// pinged because every public page load goes through it.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	code := 200
	if err := h.db.Read.PingContext(ctx); err != nil {
		dbStatus = "disconnected"
		code = 503
	}

	utils.Success(c, code, "Service is healthy", gin.H{
		"status":   "healthy",
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": dbStatus,
	})
}
