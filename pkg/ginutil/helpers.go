package ginutil

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryInt extracts an integer from query parameters with default value
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// QueryString extracts a trimmed string from query parameters
func QueryString(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

// ParamString extracts a trimmed string from path parameters
func ParamString(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Param(key))
}
