package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unibookshop/unibookshop/pkg/metrics"
)

// Metrics HTTP请求埋点中间件
// path标签用路由模板（/api/v1/books/:id）而非实际URL，控制基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
