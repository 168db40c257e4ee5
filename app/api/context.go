package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextUserIDKey      = "userID"
	ContextPermissionsKey = "permissions"
)

// UserIDFromContext returns the authenticated user id, or uuid.Nil.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// HasPermission reports whether the authenticated caller holds permission.
func HasPermission(c *gin.Context, permission string) bool {
	v, exists := c.Get(ContextPermissionsKey)
	if !exists {
		return false
	}
	permissions, ok := v.([]string)
	if !ok {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
