package individuals

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/deps"
	"github.com/joefazee/placement/models"
)

const (
	RepoKey    = "individual_repository"
	ServiceKey = "individual_service"
)

// InitServices registers the directory repository and service.
func InitServices(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)
	container.RegisterService(ServiceKey, NewService(repo))
}

// MountAuthenticated mounts the directory read routes.
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := NewHandler(container.MustService(ServiceKey).(Service), container.Logger)

	group := r.Group("/individuals", api.Can(models.PermReadCompanies))
	group.GET("", handler.Search)
	group.GET("/:enrollment", handler.GetByEnrollment)
}
