package companies

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/validator"
	"github.com/joefazee/placement/models"
)

type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
	log       logger.Logger
}

func NewHandler(service Service, s sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	return &Handler{service: service, sanitizer: s, log: log}
}

// CreateCompany godoc
// @Summary Create company
// @Description Create a hiring drive with its candidates and opening pools
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCompanyRequest true "Company"
// @Success 201 {object} api.Response{data=CompanyResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 403 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/companies [post]
func (h *Handler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	v := validator.New()
	if !req.Validate(v, h.sanitizer) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	company, err := h.service.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		if isModelValidation(err) {
			api.BadRequestResponse(c, err.Error())
			return
		}
		h.log.Error(err, map[string]interface{}{"name": req.Name})
		api.InternalErrorResponse(c, "Failed to create company")
		return
	}

	api.CreatedResponse(c, "Company created successfully", company)
}

// ListCompanies godoc
// @Summary List companies
// @Description List hiring drives, newest first
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, expired or pending"
// @Param page query int false "Page"
// @Param perPage query int false "Page size"
// @Success 200 {object} api.Response{data=[]CompanyResponse,meta=api.PaginationMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/companies [get]
func (h *Handler) ListCompanies(c *gin.Context) {
	var filters ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}
	filters.normalize()

	list, total, err := h.service.ListCompanies(c.Request.Context(), filters)
	if err != nil {
		h.log.Error(err, nil)
		api.InternalErrorResponse(c, "Failed to list companies")
		return
	}

	api.PaginatedResponse(c, "Companies retrieved successfully", list,
		api.NewPaginationMeta(filters.Page, filters.PerPage, total))
}

// GetCompany godoc
// @Summary Get company
// @Description Get a company by uuid or sequential number
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company uuid or number"
// @Success 200 {object} api.Response{data=CompanyResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/companies/{companyId} [get]
func (h *Handler) GetCompany(c *gin.Context) {
	key, err := models.ParseCompanyKey(c.Param("companyId"))
	if err != nil {
		api.BadRequestResponse(c, map[string]string{"companyId": "must be a uuid or a company number"})
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, models.ErrCompanyNotFound) {
			api.NotFoundResponse(c, "Company")
			return
		}
		h.log.Error(err, map[string]interface{}{"company": key.String()})
		api.InternalErrorResponse(c, "Failed to retrieve company")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Company retrieved successfully", company)
}

func isModelValidation(err error) bool {
	for _, target := range []error{
		models.ErrInvalidCompanyName,
		models.ErrInvalidCompanyStatus,
		models.ErrNoCandidates,
		models.ErrDuplicateCandidate,
		models.ErrInvalidPoolSeed,
		models.ErrInvalidEnrollment,
		models.ErrInvalidName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
