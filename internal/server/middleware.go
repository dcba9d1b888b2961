// internal/server/middleware.go
package server

import (
	"time"

	"assist-server/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with an ID and logs method, path, status
// and duration after the handler chain completes.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("requestID", requestID)

		started := time.Now()
		c.Next()

		log.Info("request completed", map[string]interface{}{
			"requestId": requestID,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"tookMs":    time.Since(started).Milliseconds(),
		})
	}
}
