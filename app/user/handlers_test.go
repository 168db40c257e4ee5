package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/models"
)

type HandlerTestSuite struct {
	suite.Suite
	service *MockService
	router  *gin.Engine
	userID  uuid.UUID
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.service = &MockService{}
	suite.userID = uuid.New()
	handler := NewHandler(suite.service, sanitizer.NewHTMLStripper(), logger.NewNullLogger())

	suite.router = gin.New()
	suite.router.POST("/users/register", handler.Register)
	suite.router.POST("/users/login", handler.Login)

	authed := suite.router.Group("", func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			c.Set(api.ContextUserIDKey, suite.userID)
		}
		c.Next()
	})
	authed.GET("/users/profile", handler.GetProfile)
	authed.GET("/leaderboard", handler.Leaderboard)
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) do(req *http.Request) (*httptest.ResponseRecorder, api.Response) {
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp api.Response
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (suite *HandlerTestSuite) post(path string, body interface{}) (*httptest.ResponseRecorder, api.Response) {
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	return suite.do(httptest.NewRequest(http.MethodPost, path, &buf))
}

func validRegistration() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Asha Rao",
		"email":    "Asha@Example.com",
		"phone":    "9876543210",
		"password": "password123",
	}
}

func (suite *HandlerTestSuite) TestRegister() {
	suite.service.On("Register", mock.Anything, mock.MatchedBy(func(r *RegisterUserRequest) bool {
		return r.Email == "asha@example.com" && r.Phone == "+919876543210"
	})).Return(&Response{ID: uuid.New(), Email: "asha@example.com", Tokens: 100000}, nil)

	w, resp := suite.post("/users/register", validRegistration())

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(resp.OK())
	suite.service.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRegister_BindingFailure() {
	body := validRegistration()
	delete(body, "password")

	w, resp := suite.post("/users/register", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)
	suite.service.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRegister_InvalidPhone() {
	body := validRegistration()
	body["phone"] = "not-a-phone"

	w, _ := suite.post("/users/register", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.service.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRegister_EmailTaken() {
	suite.service.On("Register", mock.Anything, mock.Anything).Return(nil, models.ErrEmailTaken)

	w, resp := suite.post("/users/register", validRegistration())

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", resp.Error.Code)
}

func (suite *HandlerTestSuite) TestRegister_InternalError() {
	suite.service.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	w, resp := suite.post("/users/register", validRegistration())

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(resp.Message, "db down")
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.service.On("Login", mock.Anything, &LoginRequest{Identity: "asha@example.com", Password: "password123"}).
		Return(&LoginResponse{AccessToken: "token-123"}, nil)

	w, resp := suite.post("/users/login", map[string]string{"identity": "asha@example.com", "password": "password123"})

	suite.Equal(http.StatusOK, w.Code)
	suite.True(resp.OK())
	suite.Contains(w.Body.String(), "token-123")
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.service.On("Login", mock.Anything, mock.Anything).Return(nil, models.ErrInvalidLogin)

	w, _ := suite.post("/users/login", map[string]string{"identity": "asha@example.com", "password": "nope"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_MissingFields() {
	w, _ := suite.post("/users/login", map[string]string{"identity": "asha@example.com"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetProfile() {
	suite.service.On("GetProfile", mock.Anything, suite.userID).
		Return(&Response{ID: suite.userID, Tokens: 98000}, nil)

	w, resp := suite.do(httptest.NewRequest(http.MethodGet, "/users/profile", http.NoBody))

	suite.Equal(http.StatusOK, w.Code)
	suite.True(resp.OK())
}

func (suite *HandlerTestSuite) TestGetProfile_NotFound() {
	suite.service.On("GetProfile", mock.Anything, suite.userID).Return(nil, models.ErrUserNotFound)

	w, _ := suite.do(httptest.NewRequest(http.MethodGet, "/users/profile", http.NoBody))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetProfile_Anonymous() {
	req := httptest.NewRequest(http.MethodGet, "/users/profile", http.NoBody)
	req.Header.Set("X-Anonymous", "1")

	w, _ := suite.do(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.service.AssertNotCalled(suite.T(), "GetProfile", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLeaderboard() {
	suite.service.On("Leaderboard", mock.Anything).Return([]LeaderboardEntry{
		{Rank: 1, Name: "Asha Rao"},
		{Rank: 2, Name: "Vikram Shah"},
	}, nil)

	w, resp := suite.do(httptest.NewRequest(http.MethodGet, "/leaderboard", http.NoBody))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(float64(2), resp.Meta.(map[string]interface{})["count"])
}

func (suite *HandlerTestSuite) TestLeaderboard_Error() {
	suite.service.On("Leaderboard", mock.Anything).Return(nil, errors.New("db down"))

	w, _ := suite.do(httptest.NewRequest(http.MethodGet, "/leaderboard", http.NoBody))

	suite.Equal(http.StatusInternalServerError, w.Code)
}
