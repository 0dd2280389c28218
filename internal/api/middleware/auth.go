package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/auth"
	"rentdesk/internal/services"
)

const (
	// ContextKeyUserID holds the key for user ID in Gin context.
	ContextKeyUserID = "userID"
	// ContextKeyIsAdmin holds the key for admin status in Gin context.
	ContextKeyIsAdmin = "isAdmin"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. The token
// must also belong to a live session, so logged-out tokens stop working
// before their JWT expiry.
func AuthMiddleware(jwtSecret string, userService services.IUserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tokenString := parts[1]
		claims, err := auth.ValidateJWT(tokenString, jwtSecret)
		if err != nil {
			errMsg := fmt.Sprintf("Invalid or expired token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}

		if !userService.IsSessionActive(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or logged out"})
			return
		}

		// Set user info in context for handlers to use
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

// AdminMiddleware creates a Gin middleware to check for admin privileges.
// Assumes AuthMiddleware runs first.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextKeyIsAdmin)
		if !exists || !isAdmin.(bool) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator privileges required"})
			return
		}
		c.Next()
	}
}
