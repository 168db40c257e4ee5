package individuals

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/placement/app/api"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/models"
)

type HandlerTestSuite struct {
	suite.Suite
	service *MockService
	router  *gin.Engine
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.service = &MockService{}
	handler := NewHandler(suite.service, logger.NewNullLogger())
	suite.router = gin.New()
	suite.router.GET("/individuals", handler.Search)
	suite.router.GET("/individuals/:enrollment", handler.GetByEnrollment)
}

func TestIndividualHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) do(path string) (*httptest.ResponseRecorder, api.Response) {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var resp api.Response
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (suite *HandlerTestSuite) TestSearch() {
	suite.service.On("Search", mock.Anything, "asha").Return([]Response{{Name: "Asha Rao"}}, nil)

	w, resp := suite.do("/individuals?q=asha")

	suite.Equal(http.StatusOK, w.Code)
	suite.True(resp.OK())
	suite.Equal(map[string]interface{}{"count": float64(1)}, resp.Meta)
}

func (suite *HandlerTestSuite) TestSearch_Error() {
	suite.service.On("Search", mock.Anything, "asha").Return(nil, errors.New("boom"))

	w, resp := suite.do("/individuals?q=asha")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(resp.Message, "boom")
}

func (suite *HandlerTestSuite) TestGetByEnrollment() {
	suite.service.On("GetByEnrollment", mock.Anything, "ENR-001").Return(&Response{Enrollment: "ENR-001"}, nil)

	w, resp := suite.do("/individuals/ENR-001")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("ENR-001", resp.Data.(map[string]interface{})["enrollment"])
}

func (suite *HandlerTestSuite) TestGetByEnrollment_NotFound() {
	suite.service.On("GetByEnrollment", mock.Anything, "ENR-404").Return(nil, models.ErrIndividualNotFound)

	w, resp := suite.do("/individuals/ENR-404")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", resp.Error.Code)
}
