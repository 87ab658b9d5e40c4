package middleware

import (
	"crypto/subtle"

	"github.com/aloysiusChng/ppe-sentinel/internal/api/response"
	"github.com/gin-gonic/gin"
)

// SharedSecret guards an endpoint with an exact-match Authorization
// header. The expected value is the static upload access key shared
// with the edge devices.
func SharedSecret(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("Authorization")
		if provided == "" {
			response.Unauthorized(c, "Authorization header is missing")
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.Unauthorized(c, "Invalid Authorization key")
			c.Abort()
			return
		}
		c.Next()
	}
}
