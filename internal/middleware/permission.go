package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PermissionChecker interface {
	Allowed(role, permission string) bool
}

// RequirePermission lets ADMIN and roles granted permission through.
// It must run after AuthMiddleware.
func RequirePermission(checker PermissionChecker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRoleKey)
		if !checker.Allowed(role, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
			return
		}
		c.Next()
	}
}
