package user

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/security"
	"github.com/joefazee/placement/models"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
)

// AuthMiddleware verifies the bearer token and loads the caller's
// permissions into the request context.
func AuthMiddleware(tokenMaker security.Maker, authService AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := strings.Fields(c.GetHeader(AuthorizationHeaderKey))
		if len(fields) != 2 || !strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		permissions, err := authService.GetUserPermissions(c.Request.Context(), payload.UserID)
		if errors.Is(err, models.ErrUserNotFound) {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}
		if err != nil {
			api.ForbiddenResponse(c, "Could not retrieve user permissions")
			c.Abort()
			return
		}

		c.Set(api.ContextUserIDKey, payload.UserID)
		c.Set(api.ContextPermissionsKey, permissions)
		c.Next()
	}
}
