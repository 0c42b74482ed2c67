package middleware

import (
	"net/http"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// RequireReviewer checks that the authenticated user holds an elevated role
// (editor, pastor or admin) permitted to approve or reject content
func RequireReviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).Elevated() {
			common.ErrorResponse(c, http.StatusForbidden, "Reviewer role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
