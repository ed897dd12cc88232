package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the token role is one of allowedRoles
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID, exists := c.Get(ContextStaffID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Staff member not authenticated"})
			c.Abort()
			return
		}

		role, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found in token"})
			c.Abort()
			return
		}

		staffRole, ok := role.(string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid role format"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if staffRole == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":         "Insufficient permissions",
			"allowed_roles": allowedRoles,
			"staff_role":    staffRole,
			"staff_id":      staffID,
		})
		c.Abort()
	}
}
