package ginutil

import (
	"strconv"

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

// QueryPage returns the 1-based page number; missing, non-numeric or
// non-positive values fall back to the first page
func QueryPage(c *gin.Context) int {
	page := QueryInt(c, "page", 1)
	if page < 1 {
		return 1
	}
	return page
}

// QueryBool reports whether a query flag is set ("true", "1", ...)
func QueryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
