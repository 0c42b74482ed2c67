package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// SchedulerAuth authenticates scheduler sweep requests with a shared
// secret instead of a user session. Checks the X-API-Key header or the
// api_key query parameter.
func SchedulerAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Scheduler API key not configured", nil)
			c.Abort()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "API key required", nil)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid API key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
