package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimitMiddleware caps request bodies at maxBodySize. Routes listed
// in routeLimits (by gin route template) get their own cap instead, e.g.
// the avatar and bulk email uploads.
func BodySizeLimitMiddleware(maxBodySize int64, routeLimits map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		limit := maxBodySize
		if override, ok := routeLimits[c.FullPath()]; ok {
			limit = override
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		c.Next()
	}
}
