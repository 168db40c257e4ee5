package companies

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/individuals"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/models"
)

type ServiceTestSuite struct {
	suite.Suite
	tx        *database.MockTransactor
	repo      *MockRepository
	directory *individuals.MockRepository
	service   Service
	ctx       context.Context
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.tx = &database.MockTransactor{}
	suite.repo = &MockRepository{}
	suite.directory = &individuals.MockRepository{}
	suite.service = NewService(suite.tx, suite.repo, suite.directory, logger.NewNullLogger())
	suite.ctx = context.Background()
}

func TestCompanyService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) TestCreateCompany_Success() {
	req := validRequest()
	req.Validate(validatorFor(), stripper())

	suite.repo.On("Create", suite.ctx, mock.AnythingOfType("*models.Company")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Company)
			c.ID = uuid.New()
			c.CompanyID = 11
		}).
		Return(nil)
	suite.directory.On("SyncCompany", suite.ctx, mock.AnythingOfType("*models.Company")).Return(nil)

	resp, err := suite.service.CreateCompany(suite.ctx, &req)

	suite.NoError(err)
	suite.Equal(int64(11), resp.CompanyID)
	suite.Require().Len(resp.Individuals, 2)
	suite.Equal("1.70", resp.Individuals[0].ForStake.StringFixed(2))
	suite.Equal("2.19", resp.Individuals[0].AgainstStake.StringFixed(2))
	suite.Equal("1.00", resp.Individuals[1].ForStake.StringFixed(2))
	suite.Equal(1, suite.tx.Calls)
	suite.repo.AssertExpectations(suite.T())
	suite.directory.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestCreateCompany_InvalidModel() {
	req := CreateCompanyRequest{Name: "Acme"}

	_, err := suite.service.CreateCompany(suite.ctx, &req)

	suite.ErrorIs(err, models.ErrNoCandidates)
	suite.Equal(0, suite.tx.Calls)
}

func (suite *ServiceTestSuite) TestCreateCompany_SyncFails() {
	req := validRequest()
	req.Validate(validatorFor(), stripper())

	suite.repo.On("Create", suite.ctx, mock.Anything).Return(nil)
	suite.directory.On("SyncCompany", suite.ctx, mock.Anything).Return(errors.New("db down"))

	_, err := suite.service.CreateCompany(suite.ctx, &req)

	suite.Error(err)
	suite.Contains(err.Error(), "sync individuals")
}

func (suite *ServiceTestSuite) TestGetCompany() {
	key := models.CompanyKey{Number: 3}
	suite.repo.On("GetByKey", suite.ctx, key).Return(&models.Company{CompanyID: 3, Name: "Acme"}, nil)

	resp, err := suite.service.GetCompany(suite.ctx, key)

	suite.NoError(err)
	suite.Equal("Acme", resp.Name)
}

func (suite *ServiceTestSuite) TestGetCompany_NotFound() {
	key := models.CompanyKey{Number: 404}
	suite.repo.On("GetByKey", suite.ctx, key).Return(nil, models.ErrCompanyNotFound)

	_, err := suite.service.GetCompany(suite.ctx, key)

	suite.ErrorIs(err, models.ErrCompanyNotFound)
}

func (suite *ServiceTestSuite) TestListCompanies() {
	filters := ListFilters{Status: models.CompanyStatusActive, Page: 1, PerPage: 20}
	suite.repo.On("List", suite.ctx, filters).
		Return([]models.Company{{CompanyID: 2}, {CompanyID: 1}}, int64(2), nil)

	list, total, err := suite.service.ListCompanies(suite.ctx, filters)

	suite.NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(list, 2)
	suite.Equal(int64(2), list[0].CompanyID)
}
