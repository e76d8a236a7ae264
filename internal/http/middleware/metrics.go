package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/questpath-backend/internal/observability"
)

// Metrics instruments request counts, error counts and latency per route.
func Metrics(m *observability.Collector) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.IncRequest(c.Request.Method, route)
		m.ObserveLatency(route, time.Since(start))
		if status := c.Writer.Status(); status >= 400 {
			m.IncError(route, status)
		}
	}
}
