package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/pokedex-service/internal/repository"
)

// readyTimeout bounds a readiness probe so a hung database cannot stall the kubelet.
const readyTimeout = 2 * time.Second

// Pinger is the minimal contract I need from storage to check readiness.
// Kept local to the handler package to avoid coupling and simplify tests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	repo    Pinger
	started time.Time
}

func NewHealthHandler(repo Pinger) *HealthHandler {
	return &HealthHandler{repo: repo, started: time.Now()}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"uptime": time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Readiness verifies the database answers and carries the schema.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	err := h.repo.Ping(ctx)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": gin.H{"database": "ok"}})
	case errors.Is(err, repository.ErrNotMigrated):
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": gin.H{"database": "not_migrated"}})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"checks": gin.H{"database": "unreachable"},
			"error":  err.Error(),
		})
	}
}
