package individuals

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

func (m *MockRepository) SyncCompany(ctx context.Context, company *models.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockRepository) Search(ctx context.Context, query string, limit int) ([]models.Individual, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Individual), args.Error(1)
}

func (m *MockRepository) GetByEnrollment(ctx context.Context, enrollment string) (*models.Individual, error) {
	args := m.Called(ctx, enrollment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Individual), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, query string) ([]Response, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Response), args.Error(1)
}

func (m *MockService) GetByEnrollment(ctx context.Context, enrollment string) (*Response, error) {
	args := m.Called(ctx, enrollment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}
