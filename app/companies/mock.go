package companies

import (
	"context"

	"github.com/joefazee/placement/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository {
	return m
}

func (m *MockRepository) Create(ctx context.Context, company *models.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockRepository) GetByKey(ctx context.Context, key models.CompanyKey) (*models.Company, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filters ListFilters) ([]models.Company, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Company), args.Get(1).(int64), args.Error(2)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateCompany(ctx context.Context, req *CreateCompanyRequest) (*CompanyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CompanyResponse), args.Error(1)
}

func (m *MockService) GetCompany(ctx context.Context, key models.CompanyKey) (*CompanyResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CompanyResponse), args.Error(1)
}

func (m *MockService) ListCompanies(ctx context.Context, filters ListFilters) ([]CompanyResponse, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]CompanyResponse), args.Get(1).(int64), args.Error(2)
}
