package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/splitledger/internal/platform/metrics"
)

// MetricsMiddleware records request counts and latency per matched route.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
