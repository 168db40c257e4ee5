package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/individuals"
	"github.com/joefazee/placement/app/settlement"
	"github.com/joefazee/placement/internal/deps"
	"github.com/joefazee/placement/internal/metrics"
	"github.com/joefazee/placement/models"
)

const (
	RepoKey    = "admin_repository"
	ServiceKey = "admin_service"
)

// InitServices registers the admin service. Individuals and settlement
// must be initialized first.
func InitServices(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	container.RegisterService(ServiceKey, NewService(Dependencies{
		Tx:        database.NewTxRunner(container.DB, database.WithRetryHook(metrics.RetryHook("resolve_company"))),
		Repo:      repo,
		Directory: container.GetRepository(individuals.RepoKey).(individuals.Repository),
		Bets:      container.GetRepository(settlement.RepoKey).(settlement.Repository),
		Settler:   container.MustService(settlement.ServiceKey).(settlement.Service),
		Publisher: container.Publisher,
		Logger:    container.Logger,
	}))
}

// MountAdmin mounts company resolution and bet settlement routes.
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.MustService(ServiceKey).(Service), container.Logger)

	admin := r.Group("/admin")
	admin.PUT("/companies/:companyId/status", api.Can(models.PermResolveCompanies), handler.SetCompanyStatus)
	admin.PUT("/companies/:companyId/individuals/:individualId/result", api.Can(models.PermResolveCompanies), handler.SetCandidateResult)
	admin.POST("/bets/:betId/settle", api.Can(models.PermSettleBets), handler.SettleBet)
}
