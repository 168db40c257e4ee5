package api

import "github.com/gin-gonic/gin"

// Can aborts the request unless the caller holds permission.
func Can(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissionsValue, exists := c.Get(ContextPermissionsKey)
		if !exists {
			ForbiddenResponse(c, "Access Denied: Permissions not found in context")
			c.Abort()
			return
		}

		if _, ok := permissionsValue.([]string); !ok {
			ForbiddenResponse(c, "Access Denied: Invalid permissions data in context")
			c.Abort()
			return
		}

		if !HasPermission(c, permission) {
			ForbiddenResponse(c, "Access Denied: You do not have the required permission")
			c.Abort()
			return
		}

		c.Next()
	}
}
