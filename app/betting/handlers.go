package betting

import (
	"errors"
	"net/http"

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

// PlaceBets godoc
// @Summary Place bets
// @Description Place a batch of for/against bets on candidates of one company. The batch commits or fails as a whole.
// @Tags bets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceBetsRequest true "Bet batch"
// @Success 201 {object} api.Response{data=PlaceBetsResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/bets/place-bets [post]
func (h *Handler) PlaceBets(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	var req PlaceBetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}
	if _, err := req.Total(); err != nil {
		api.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.service.PlaceBets(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err, map[string]interface{}{
			"user_id": userID,
			"company": req.CompanyID,
		})
		return
	}

	api.CreatedResponse(c, "Bets placed successfully", resp)
}

// RecalculateStakes godoc
// @Summary Recalculate stakes
// @Description Recompute the stakes of every candidate of a company from its current pools
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param companyId path string true "Company uuid or number"
// @Success 200 {object} api.Response{data=companies.CompanyResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/bets/recalculate-stakes/{companyId} [post]
func (h *Handler) RecalculateStakes(c *gin.Context) {
	key, err := models.ParseCompanyKey(c.Param("companyId"))
	if err != nil {
		api.BadRequestResponse(c, map[string]string{"companyId": "must be a uuid or a company number"})
		return
	}

	company, err := h.service.RecalculateStakes(c.Request.Context(), key)
	if err != nil {
		h.handleError(c, err, map[string]interface{}{"company": key.String()})
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Stakes recalculated successfully", company)
}

// GetUserBets godoc
// @Summary List a user's bets
// @Description Active and archived bets of a user, newest first
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} api.Response{data=[]BetResponse,meta=api.ListMeta}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/users/{userId}/bets [get]
func (h *Handler) GetUserBets(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		api.BadRequestResponse(c, map[string]string{"userId": "must be a valid uuid"})
		return
	}

	bets, err := h.service.GetUserBets(c.Request.Context(), userID)
	if err != nil {
		h.log.Error(err, map[string]interface{}{"user_id": userID})
		api.InternalErrorResponse(c, "Failed to retrieve bets")
		return
	}

	api.ListResponse(c, "Bets retrieved successfully", bets, len(bets))
}

func (h *Handler) handleError(c *gin.Context, err error, fields map[string]interface{}) {
	switch {
	case errors.Is(err, models.ErrInsufficientTokens):
		api.InsufficientTokensResponse(c)
	case errors.Is(err, models.ErrCompanyNotFound):
		api.NotFoundResponse(c, "Company")
	case errors.Is(err, models.ErrCandidateNotFound):
		api.NotFoundResponse(c, "Candidate")
	case errors.Is(err, models.ErrUserNotFound):
		api.NotFoundResponse(c, "User")
	case errors.Is(err, models.ErrInvalidCompanyID),
		errors.Is(err, models.ErrEmptyBetBatch),
		errors.Is(err, models.ErrBetBatchTooLarge),
		errors.Is(err, models.ErrInvalidBetType),
		errors.Is(err, models.ErrInvalidBetAmount),
		errors.Is(err, models.ErrPoolOverflow),
		errors.Is(err, models.ErrCompanyNotOpen),
		errors.Is(err, models.ErrCandidateResolved):
		api.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrTxConflict):
		api.ConflictResponse(c, "The request conflicted with another update, please retry")
	default:
		h.log.Error(err, fields)
		api.InternalErrorResponse(c, "Failed to process bets")
	}
}
