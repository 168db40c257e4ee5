package companies

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/individuals"
	"github.com/joefazee/placement/internal/deps"
	"github.com/joefazee/placement/internal/metrics"
	"github.com/joefazee/placement/models"
)

const (
	RepoKey    = "company_repository"
	ServiceKey = "company_service"
)

// InitServices registers the company repository and service. The
// individuals module must be initialized first.
func InitServices(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	directory := container.GetRepository(individuals.RepoKey).(individuals.Repository)
	tx := database.NewTxRunner(container.DB, database.WithRetryHook(metrics.RetryHook("create_company")))
	container.RegisterService(ServiceKey, NewService(tx, repo, directory, container.Logger))
}

func newHandler(container *deps.Container) *Handler {
	return NewHandler(container.MustService(ServiceKey).(Service), container.Sanitizer, container.Logger)
}

// MountAuthenticated mounts the company read routes.
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := newHandler(container)

	group := r.Group("/companies", api.Can(models.PermReadCompanies))
	group.GET("", handler.ListCompanies)
	group.GET("/:companyId", handler.GetCompany)
}

// MountAdmin mounts company management routes.
func MountAdmin(r *gin.RouterGroup, container *deps.Container) {
	handler := newHandler(container)

	r.POST("/admin/companies", api.Can(models.PermManageCompanies), handler.CreateCompany)
}
