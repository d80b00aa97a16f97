package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and stores the authenticated
// principal (subject + role) in the request context. The core never reads
// ambient auth state; handlers pass the principal down explicitly.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "missing authorization header"}})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "invalid authorization header format"}})
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "invalid token"}})
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// Subject returns the authenticated principal id set by AuthMiddleware.
func Subject(c *gin.Context) string {
	return c.GetString("subject")
}

// Role returns the authenticated principal role set by AuthMiddleware.
func Role(c *gin.Context) string {
	return c.GetString("role")
}
