package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-rooms/metrics"
)

// Metrics records request counts and latency, labelled by route template so
// /api/rooms/1 and /api/rooms/2 share a series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
