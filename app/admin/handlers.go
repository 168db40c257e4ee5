package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// SetCompanyStatus godoc
// @Summary Set company status
// @Description Change the status of a company. Expiring it settles every active bet on it.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company uuid or number"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/companies/{companyId}/status [put]
func (h *Handler) SetCompanyStatus(c *gin.Context) {
	key, ok := companyKey(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.SetCompanyStatus(c.Request.Context(), key, req.Status)
	if err != nil {
		h.handleError(c, err, map[string]interface{}{"company": key.String(), "status": req.Status})
		return
	}

	api.UpdatedResponse(c, "Company status updated successfully", resp)
}

// SetCandidateResult godoc
// @Summary Set candidate result
// @Description Record won or lost for a candidate and settle the bets on it. Repeating the same result retries settlement.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company uuid or number"
// @Param individualId path int true "Candidate ID"
// @Param request body ResultRequest true "Result"
// @Success 200 {object} api.Response{data=ResolutionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/companies/{companyId}/individuals/{individualId}/result [put]
func (h *Handler) SetCandidateResult(c *gin.Context) {
	key, ok := companyKey(c)
	if !ok {
		return
	}
	candidateID, err := strconv.Atoi(c.Param("individualId"))
	if err != nil || candidateID < 1 {
		api.BadRequestResponse(c, map[string]string{"individualId": "must be a positive integer"})
		return
	}

	var req ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.SetCandidateResult(c.Request.Context(), key, candidateID, req.Result)
	if err != nil {
		h.handleError(c, err, map[string]interface{}{
			"company":   key.String(),
			"candidate": candidateID,
			"result":    req.Result,
		})
		return
	}

	api.UpdatedResponse(c, "Candidate result updated successfully", resp)
}

// SettleBet godoc
// @Summary Settle one bet
// @Description Settle a single active bet against its candidate's current result
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param betId path string true "Bet ID"
// @Success 200 {object} api.Response{data=settlement.Outcome}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/admin/bets/{betId}/settle [post]
func (h *Handler) SettleBet(c *gin.Context) {
	betID, err := uuid.Parse(c.Param("betId"))
	if err != nil {
		api.BadRequestResponse(c, map[string]string{"betId": "must be a valid uuid"})
		return
	}

	out, err := h.service.SettleBet(c.Request.Context(), betID)
	if err != nil {
		h.handleError(c, err, map[string]interface{}{"bet_id": betID})
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Bet settled successfully", out)
}

func companyKey(c *gin.Context) (models.CompanyKey, bool) {
	key, err := models.ParseCompanyKey(c.Param("companyId"))
	if err != nil {
		api.BadRequestResponse(c, map[string]string{"companyId": "must be a uuid or a company number"})
		return key, false
	}
	return key, true
}

func (h *Handler) handleError(c *gin.Context, err error, fields map[string]interface{}) {
	switch {
	case errors.Is(err, models.ErrCompanyNotFound):
		api.NotFoundResponse(c, "Company")
	case errors.Is(err, models.ErrCandidateNotFound):
		api.NotFoundResponse(c, "Candidate")
	case errors.Is(err, models.ErrBetNotFound):
		api.NotFoundResponse(c, "Bet")
	case errors.Is(err, models.ErrInvalidCompanyStatus),
		errors.Is(err, models.ErrInvalidResult):
		api.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrResultConflict):
		api.ConflictResponse(c, "Candidate result is already set to a different value")
	case errors.Is(err, models.ErrCandidateAwaited):
		api.ConflictResponse(c, "Candidate result is not known yet")
	case errors.Is(err, models.ErrTxConflict):
		api.ConflictResponse(c, "The request conflicted with another update, please retry")
	default:
		h.log.Error(err, fields)
		api.InternalErrorResponse(c, "Failed to resolve")
	}
}
