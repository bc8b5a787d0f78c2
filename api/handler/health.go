package handler

import (
	"net/http"
	"time"

	"github.com/domfetch/domfetch/models"
	"github.com/gin-gonic/gin"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// SessionStatus reports whether the remote browser session is live.
type SessionStatus interface {
	Connected() bool
}

// Health returns a handler for GET /api/v1/health.
func Health(sessions SessionStatus, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status: "healthy",
			Uptime: time.Since(startTime).Round(time.Second).String(),
			Browser: models.BrowserStatus{
				Connected: sessions.Connected(),
			},
			Version: Version,
		})
	}
}
