package individuals

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/models"
)

type Handler struct {
	service Service
	log     logger.Logger
}

func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Search godoc
// @Summary Search individuals
// @Description Find directory entries by enrollment number or name
// @Tags individuals
// @Produce json
// @Security BearerAuth
// @Param q query string true "Enrollment or name fragment"
// @Success 200 {object} api.Response{data=[]Response}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/individuals [get]
func (h *Handler) Search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.Error(err, map[string]interface{}{"query": c.Query("q")})
		api.InternalErrorResponse(c, "Failed to search individuals")
		return
	}
	api.ListResponse(c, "Individuals retrieved successfully", results, len(results))
}

// GetByEnrollment godoc
// @Summary Get individual
// @Description Get a directory entry and every company it appears in
// @Tags individuals
// @Produce json
// @Security BearerAuth
// @Param enrollment path string true "Enrollment number"
// @Success 200 {object} api.Response{data=Response}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/individuals/{enrollment} [get]
func (h *Handler) GetByEnrollment(c *gin.Context) {
	ind, err := h.service.GetByEnrollment(c.Request.Context(), c.Param("enrollment"))
	if err != nil {
		if errors.Is(err, models.ErrIndividualNotFound) {
			api.NotFoundResponse(c, "Individual")
			return
		}
		h.log.Error(err, map[string]interface{}{"enrollment": c.Param("enrollment")})
		api.InternalErrorResponse(c, "Failed to retrieve individual")
		return
	}
	api.SuccessResponse(c, 200, "Individual retrieved successfully", ind)
}
