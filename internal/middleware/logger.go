package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tiUlisses/securityvision-presence-backend/internal/metrics"
)

// Logger middleware logs HTTP requests and records request metrics.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method

		// The route pattern keeps metric cardinality bounded; raw
		// paths carry scope ids.
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Inc()
		metrics.RequestDuration.WithLabelValues(endpoint, method).Observe(latency.Seconds())

		if raw != "" {
			path = path + "?" + raw
		}
		log.Printf("[%s] %s %s %d %v %s",
			method,
			path,
			c.ClientIP(),
			statusCode,
			latency,
			c.Errors.String(),
		)
	}
}
