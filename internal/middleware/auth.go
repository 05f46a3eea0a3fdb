package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"charter/internal/auth"
	"charter/internal/config"
	"charter/internal/domain"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserIDKey = "auth_user_id"
	ContextRoleKey   = "auth_user_role"
)

// AuthMiddleware returns middleware that validates the Bearer token and
// stores the verified caller identity and role in the request context.
func AuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, domain.Role(claims.Role))

		c.Next()
	}
}

// RequireRole returns middleware that rejects callers whose role is not
// in the allowed set. Must run after AuthMiddleware.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRoleKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient privileges"})
	}
}
