package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftcircle/giftcircle/internal/metrics"
)

// Metrics records request counts and latency per route. The route label is
// the registered pattern (e.g. /api/items/:id), not the raw path, to keep
// cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
