package settlement

import (
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/internal/deps"
	"github.com/joefazee/placement/internal/metrics"
)

const (
	RepoKey    = "settlement_repository"
	ServiceKey = "settlement_service"
)

// InitServices registers the settlement repository and service. Settlement
// has no routes of its own; admin drives it.
func InitServices(container *deps.Container, config *Config) {
	if config == nil {
		config = GetDefaultConfig()
	}

	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	tx := database.NewTxRunner(container.DB,
		database.WithMaxRetries(config.MaxTxRetries),
		database.WithRetryHook(metrics.RetryHook("settle_bet")),
	)
	container.RegisterService(ServiceKey, NewService(tx, repo, container.Publisher, config, container.Logger))
}
