package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	promm "github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count and latency per route.  The route label uses
// the matched pattern, not the raw path, so identifiers do not explode the
// label cardinality.
func Metrics(m *promm.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
