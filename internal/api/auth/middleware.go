package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/pkg/config"
)

// ApiKeyMiddleware guards the API with the x-api-key header. With no key
// configured the gateway runs open, for local development.
func ApiKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.ApiKey == "" {
			c.Next()
			return
		}

		key := c.GetHeader("x-api-key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(config.ApiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid api key",
			})
			return
		}

		c.Next()
	}
}
