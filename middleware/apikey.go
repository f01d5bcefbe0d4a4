package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware gates a router group behind a shared x-api-key
// header. It runs before any role check on the moderation routes.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "API key is not configured"})
			c.Abort()
			return
		}

		supplied := c.GetHeader("x-api-key")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
