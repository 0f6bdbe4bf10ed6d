package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// path标签使用路由模板（如/api/v1/books/:id）而不是真实URL，
// 避免指标基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.HTTPRequestsTotal == nil {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求归为一类
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
