package user

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/internal/cache"
	"github.com/joefazee/placement/internal/deps"
)

const (
	RepoKey        = "user_repository"
	ServiceKey     = "user_service"
	AuthServiceKey = "auth_service"
)

// InitServices registers the user repository, the account service and the
// permission lookup used by AuthMiddleware.
func InitServices(container *deps.Container,
	cfg *Config,
	permissions cache.Cache[[]string],
	board cache.Cache[[]LeaderboardEntry]) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	container.RegisterService(ServiceKey, NewService(repo, container.TokenMaker, board, cfg, container.Logger))
	container.RegisterService(AuthServiceKey, NewAuthService(repo, permissions, cfg.PermissionTTL))
}

// Authenticator returns the bearer-token middleware for protected groups.
func Authenticator(container *deps.Container) gin.HandlerFunc {
	return AuthMiddleware(container.TokenMaker, container.MustService(AuthServiceKey).(AuthService))
}

func newHandler(container *deps.Container) *Handler {
	return NewHandler(container.MustService(ServiceKey).(Service), container.Sanitizer, container.Logger)
}

// MountPublic mounts registration and login.
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := newHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/register", handler.Register)
	userGroup.POST("/login", handler.Login)
}

// MountAuthenticated mounts routes that need a logged-in caller.
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := newHandler(container)

	r.GET("/users/profile", handler.GetProfile)
	r.GET("/leaderboard", handler.Leaderboard)
}
