package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/settlement"
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

func (m *MockRepository) LockCompany(ctx context.Context, key models.CompanyKey) (*models.Company, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockRepository) GetCompanyByRef(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockRepository) UpdateCompanyStatus(ctx context.Context, id uuid.UUID, status models.CompanyStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRepository) UpdateCandidateResult(ctx context.Context, candidateRowID uuid.UUID, result models.CandidateResult) error {
	return m.Called(ctx, candidateRowID, result).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) SetCompanyStatus(ctx context.Context, key models.CompanyKey, status models.CompanyStatus) (*ResolutionResponse, error) {
	args := m.Called(ctx, key, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ResolutionResponse), args.Error(1)
}

func (m *MockService) SetCandidateResult(ctx context.Context, key models.CompanyKey, candidateID int, result models.CandidateResult) (*ResolutionResponse, error) {
	args := m.Called(ctx, key, candidateID, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ResolutionResponse), args.Error(1)
}

func (m *MockService) SettleBet(ctx context.Context, betID uuid.UUID) (*settlement.Outcome, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Outcome), args.Error(1)
}
