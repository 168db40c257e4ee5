package settlement

import (
	"context"

	"github.com/google/uuid"
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

func (m *MockRepository) LockActiveBet(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockRepository) LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) SaveUserStats(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockRepository) ArchiveBet(ctx context.Context, archived *models.ExpiredBet) error {
	return m.Called(ctx, archived).Error(0)
}

func (m *MockRepository) DeleteBet(ctx context.Context, betID uuid.UUID) error {
	return m.Called(ctx, betID).Error(0)
}

func (m *MockRepository) GetBet(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	args := m.Called(ctx, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockRepository) IsArchived(ctx context.Context, betID uuid.UUID) (bool, error) {
	args := m.Called(ctx, betID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ActiveBets(ctx context.Context, companyRef uuid.UUID, candidateID *int) ([]models.Bet, error) {
	args := m.Called(ctx, companyRef, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Settle(ctx context.Context, betID uuid.UUID, result models.CandidateResult) (*Outcome, error) {
	args := m.Called(ctx, betID, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Outcome), args.Error(1)
}

func (m *MockService) SettleMany(ctx context.Context, jobs []Job) *Report {
	return m.Called(ctx, jobs).Get(0).(*Report)
}
