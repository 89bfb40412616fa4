// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/prometheus"
)

// RequestLogger logs one structured line per request and feeds the HTTP
// metrics.  metrics may be nil.
func RequestLogger(log logging.Logger, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("duration", duration),
			logging.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request served", fields...)
		}

		if metrics != nil {
			prometheus.RecordHTTPRequest(metrics, c.Request.Method, path, status, duration)
		}
	}
}

// Recovery converts panics into 500 responses with a structured log line,
// instead of gin's default stderr dump.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			logging.String("path", c.Request.URL.Path),
			logging.Any("panic", recovered))
		c.AbortWithStatusJSON(500, gin.H{
			"code":    "COMMON_001",
			"message": "internal server error",
		})
	})
}
