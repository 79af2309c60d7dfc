package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards administrative routes: the authenticated principal
// must carry the admin flag. Mount after JWTAuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminVal, exists := c.Get(AuthAdminKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin flag not found in token, ensure JWT middleware runs first"})
			return
		}

		isAdmin, ok := adminVal.(bool)
		if !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}
