package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/hospital-records/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request once the handler chain has finished.
// Events are persisted to request_logs when util.SetRequestLoggerDB was called at startup.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		details := map[string]interface{}{
			"raw_path": c.Request.URL.Path,
			"query":    c.Request.URL.RawQuery,
		}
		if len(c.Errors) > 0 {
			details["errors"] = c.Errors.Errors()
		}

		util.LogRequestEvent(util.RequestEvent{
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       path,
			Status:     status,
			DurationMS: duration.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Message:    fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:    details,
		})
	}
}
