package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var startTime = time.Now()

// Health handles GET /health
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, database := http.StatusOK, "ok"
		if err := db.Ping(ctx); err != nil {
			status, database = http.StatusServiceUnavailable, "unavailable"
		}
		c.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"uptime":   time.Since(startTime).Round(time.Second).String(),
			"database": database,
		})
	}
}
