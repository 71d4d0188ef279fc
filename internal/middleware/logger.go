package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestLogger logs one line per request, the level following the response status
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,                 // HTTP method
			"path":       c.Request.URL.Path,               // Requested path
			"route":      c.FullPath(),                     // Matched route pattern
			"status":     status,                           // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Handling time
			"client_ip":  c.ClientIP(),                     // Caller address
			"bytes":      c.Writer.Size(),                  // Response size
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("error", c.Errors.String())
		}
		switch {
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
