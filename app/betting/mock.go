package betting

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/companies"
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

func (m *MockRepository) LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) SaveCandidates(ctx context.Context, candidates []*models.Candidate) error {
	return m.Called(ctx, candidates).Error(0)
}

func (m *MockRepository) UpdateCompanyTotal(ctx context.Context, companyID uuid.UUID, total int64) error {
	return m.Called(ctx, companyID, total).Error(0)
}

func (m *MockRepository) CreateBets(ctx context.Context, bets []*models.Bet) error {
	return m.Called(ctx, bets).Error(0)
}

func (m *MockRepository) UpdateUserTokens(ctx context.Context, userID uuid.UUID, tokens int64) error {
	return m.Called(ctx, userID, tokens).Error(0)
}

func (m *MockRepository) GetActiveBetsByUser(ctx context.Context, userID uuid.UUID) ([]models.Bet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockRepository) GetExpiredBetsByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpiredBet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExpiredBet), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) PlaceBets(ctx context.Context, userID uuid.UUID, req *PlaceBetsRequest) (*PlaceBetsResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlaceBetsResponse), args.Error(1)
}

func (m *MockService) RecalculateStakes(ctx context.Context, key models.CompanyKey) (*companies.CompanyResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*companies.CompanyResponse), args.Error(1)
}

func (m *MockService) GetUserBets(ctx context.Context, userID uuid.UUID) ([]BetResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BetResponse), args.Error(1)
}
