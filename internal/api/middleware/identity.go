package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Context keys set by Identity.
const (
	UserIDKey    = "user_id"
	CompanyIDKey = "company_id"
)

// Identity requires the caller to identify themselves through the
// X-User-ID and X-Company-ID headers. There is no session to fall back on;
// authentication is handled upstream by the gateway.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing or invalid X-User-ID header"})
			return
		}

		companyID, err := strconv.ParseInt(c.GetHeader("X-Company-ID"), 10, 64)
		if err != nil || companyID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing or invalid X-Company-ID header"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(CompanyIDKey, companyID)
		c.Next()
	}
}

// UserID reads the identity set by Identity.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}

// CompanyID reads the identity set by Identity.
func CompanyID(c *gin.Context) int64 {
	return c.GetInt64(CompanyIDKey)
}
