package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SweepAuthMiddleware guards the cron sweep endpoint with a shared secret.
// The scheduler must present "Authorization: Bearer <secret>" exactly; the
// comparison is constant-time. A server without a configured secret refuses
// every sweep outright rather than running one unauthenticated.
func SweepAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Server Configuration Error: cron secret missing"})
			return
		}

		header := c.GetHeader("Authorization")
		expected := "Bearer " + secret
		if subtle.ConstantTimeCompare([]byte(header), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
