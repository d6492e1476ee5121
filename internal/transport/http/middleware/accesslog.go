package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// AccessLog writes one structured line per request once it completed.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(ContextRequestID),
		}
		switch {
		case status >= 500:
			logging.Error("http request", kv...)
		case status >= 400:
			logging.Warn("http request", kv...)
		default:
			logging.Info("http request", kv...)
		}
	}
}
