package user

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/security"
	"github.com/joefazee/placement/models"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	tokenMaker  *security.MockMaker
	authService *MockAuthService
	router      *gin.Engine
}

func (suite *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	suite.tokenMaker = &security.MockMaker{}
	suite.authService = &MockAuthService{}
	suite.router = gin.New()

	suite.router.Use(AuthMiddleware(suite.tokenMaker, suite.authService))
	suite.router.GET("/test", api.Can(models.PermPlaceBets), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": api.UserIDFromContext(c).String()})
	})
}

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (suite *AuthMiddlewareTestSuite) request(header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if header != "" {
		req.Header.Set(AuthorizationHeaderKey, header)
	}
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestMissingAuthHeader() {
	w := suite.request("")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeader() {
	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		w := suite.request(header)
		suite.Equal(http.StatusUnauthorized, w.Code, header)
	}
}

func (suite *AuthMiddlewareTestSuite) TestInvalidToken() {
	suite.tokenMaker.On("VerifyToken", "bad").Return(nil, security.ErrInvalidToken)

	w := suite.request("Bearer bad")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.authService.AssertNotCalled(suite.T(), "GetUserPermissions", mock.Anything, mock.Anything)
}

func (suite *AuthMiddlewareTestSuite) TestDeletedUser() {
	userID := uuid.New()
	suite.tokenMaker.ExpectToken("good", userID, string(models.RoleUser))
	suite.authService.On("GetUserPermissions", mock.Anything, userID).Return(nil, models.ErrUserNotFound)

	w := suite.request("Bearer good")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestPermissionLookupFails() {
	userID := uuid.New()
	suite.tokenMaker.ExpectToken("good", userID, string(models.RoleUser))
	suite.authService.On("GetUserPermissions", mock.Anything, userID).Return(nil, errors.New("db down"))

	w := suite.request("Bearer good")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMissingPermission() {
	userID := uuid.New()
	suite.tokenMaker.ExpectToken("good", userID, string(models.RoleUser))
	suite.authService.On("GetUserPermissions", mock.Anything, userID).Return([]string{models.PermReadBets}, nil)

	w := suite.request("Bearer good")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestAuthorized() {
	userID := uuid.New()
	suite.tokenMaker.ExpectToken("good", userID, string(models.RoleUser))
	suite.authService.On("GetUserPermissions", mock.Anything, userID).Return(models.RoleUser.Permissions(), nil)

	w := suite.request("bearer good")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), userID.String())
}
