package betting

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/internal/deps"
	"github.com/joefazee/placement/internal/metrics"
	"github.com/joefazee/placement/models"
)

const (
	RepoKey    = "betting_repository"
	ServiceKey = "betting_service"
)

// InitServices registers the betting repository and service.
func InitServices(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	tx := database.NewTxRunner(container.DB,
		database.WithMaxRetries(config.MaxTxRetries),
		database.WithRetryHook(metrics.RetryHook("place_bets")),
	)
	container.RegisterService(ServiceKey, NewService(tx, repo, container.Publisher, config, container.Logger))
}

// MountAuthenticated mounts bet placement and history routes.
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.MustService(ServiceKey).(Service), container.Logger)

	bets := r.Group("/bets")
	bets.POST("/place-bets", api.Can(models.PermPlaceBets), handler.PlaceBets)
	bets.POST("/recalculate-stakes/:companyId", api.Can(models.PermRecalculate), handler.RecalculateStakes)

	r.GET("/users/:userId/bets", api.Can(models.PermReadBets), handler.GetUserBets)
}
