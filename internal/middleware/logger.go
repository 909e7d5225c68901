package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maroof-insights/storefront-dashboard/pkg/response"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[%s] %s %s %d %v req=%s %s",
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			c.GetString(response.RequestIDKey),
			c.Errors.String(),
		)
	}
}
