package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware answers cross-origin requests for the read-only API.
// origin is "*" or a comma-separated allow-list. Requests and preflights from
// origins outside the list get no CORS headers, which makes the browser block them.
func CORSMiddleware(origin string) gin.HandlerFunc {
	wildcard := strings.TrimSpace(origin) == "*"
	allowed := make(map[string]struct{})
	if !wildcard {
		for _, o := range strings.Split(origin, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowed[o] = struct{}{}
			}
		}
	}

	return func(c *gin.Context) {
		requestOrigin := c.GetHeader("Origin")

		allowedOrigin := "*"
		if !wildcard {
			c.Header("Vary", "Origin")
			if _, ok := allowed[requestOrigin]; !ok {
				if c.Request.Method == http.MethodOptions && requestOrigin != "" {
					c.AbortWithStatus(http.StatusNoContent)
					return
				}
				c.Next()
				return
			}
			allowedOrigin = requestOrigin
		}

		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, If-None-Match, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "ETag, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
