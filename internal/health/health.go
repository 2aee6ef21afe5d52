package health

import (
	"context"
	"net/http"
	"time"

	"contact-dedupe/internal/logger"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthChecker reports liveness and, when a contact database is
// configured, its reachability.
type HealthChecker struct {
	db      pinger
	timeout time.Duration
}

// NewHealthChecker creates a checker. db may be nil when no database source
// is configured.
func NewHealthChecker(db pinger, timeout time.Duration) *HealthChecker {
	return &HealthChecker{db: db, timeout: timeout}
}

func (h *HealthChecker) Handler(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		logger.Warn().Err(err).Msg("database health check failed")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
