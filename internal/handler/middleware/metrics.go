package middleware

import (
	"time"

	"hotel-backoffice/internal/infra/observability"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route. The
// templated route path keeps label cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observability.ObserveHTTP(path, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
