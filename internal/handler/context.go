package handler

import (
	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/middleware"
)

// callerID returns the verified user ID set by the auth middleware.
func callerID(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// callerRole returns the verified role set by the auth middleware.
func callerRole(c *gin.Context) domain.Role {
	if v, ok := c.Get(middleware.ContextRoleKey); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return ""
}
