// Package middleware file: middleware/admin_token.go
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
)

// AdminTokenRequired gates the admin API behind a static bearer token.
// The token is accepted from the X-Admin-Token header or a "token" query
// parameter. Comparison is constant-time.
func AdminTokenRequired(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-Admin-Token")
		if presented == "" {
			presented = c.Query("token")
		}

		if expected == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			logger.Warn.Printf("AdminTokenRequired: rejected request to %s from %s",
				c.Request.URL.Path, GetClientIP(c))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		logger.Debug.Println("AdminTokenRequired - passed, continuing request")
		c.Next()
	}
}
