package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/validator"
	"github.com/joefazee/placement/models"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
	log       logger.Logger
}

// NewHandler creates a new user handler
func NewHandler(service Service, s sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	return &Handler{service: service, sanitizer: s, log: log}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account funded with the initial token grant
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterUserRequest  true  "User registration details"
// @Success      201      {object}  api.Response{data=Response}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      409      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	v := validator.New()
	if !req.Validate(v, h.sanitizer) {
		api.ValidationErrorResponse(c, validator.NewValidationError("Validation failed", v.Errors))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	switch {
	case err == nil:
		api.CreatedResponse(c, "User registered successfully", user)
	case errors.Is(err, models.ErrEmailTaken):
		api.ConflictResponse(c, "Email already registered")
	case errors.Is(err, models.ErrPasswordTooShort), errors.Is(err, models.ErrInvalidName), errors.Is(err, models.ErrInvalidEmail):
		api.BadRequestResponse(c, err.Error())
	default:
		h.log.Error(err, map[string]interface{}{"email": req.Email})
		api.InternalErrorResponse(c, "Failed to register user")
	}
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticate with email or phone and return an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "User credentials"
// @Success      200      {object}  api.Response{data=LoginResponse}
// @Failure      400      {object}  api.Response{error=api.ErrorInfo}
// @Failure      401      {object}  api.Response{error=api.ErrorInfo}
// @Failure      500      {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, api.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if errors.Is(err, models.ErrInvalidLogin) {
		api.UnauthorizedResponse(c)
		return
	}
	if err != nil {
		h.log.Error(err, nil)
		api.InternalErrorResponse(c, "Failed to log in")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// GetProfile godoc
// @Summary      Current user profile
// @Description  Balance and betting statistics of the caller
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=Response}
// @Failure      401  {object}  api.Response{error=api.ErrorInfo}
// @Failure      404  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID := api.UserIDFromContext(c)
	if userID == uuid.Nil {
		api.UnauthorizedResponse(c)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		api.NotFoundResponse(c, "User")
		return
	}
	if err != nil {
		h.log.Error(err, map[string]interface{}{"user_id": userID})
		api.InternalErrorResponse(c, "Failed to load profile")
		return
	}

	api.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// Leaderboard godoc
// @Summary      Leaderboard
// @Description  Top bettors by token balance, then success rate
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  api.Response{data=[]LeaderboardEntry,meta=api.ListMeta}
// @Failure      500  {object}  api.Response{error=api.ErrorInfo}
// @Router       /api/v1/leaderboard [get]
func (h *Handler) Leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard(c.Request.Context())
	if err != nil {
		h.log.Error(err, nil)
		api.InternalErrorResponse(c, "Failed to load leaderboard")
		return
	}

	api.ListResponse(c, "Leaderboard retrieved successfully", entries, len(entries))
}
