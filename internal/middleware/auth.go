package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	if str, ok := userID.(string); ok {
		return str
	}
	return ""
}

// GetRole extracts the actor role from context
func GetRole(c *gin.Context) domain.Role {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	if str, ok := role.(string); ok {
		return domain.Role(str)
	}
	return ""
}

// GetActor builds the explicit Actor value passed into every workflow and
// versioning operation
func GetActor(c *gin.Context) domain.Actor {
	name := ""
	if v, ok := c.Get("userName"); ok {
		name, _ = v.(string)
	}
	return domain.Actor{
		ID:   GetUserID(c),
		Name: name,
		Role: GetRole(c),
	}
}
