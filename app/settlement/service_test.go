package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/models"
)

type ServiceTestSuite struct {
	suite.Suite
	tx        *database.MockTransactor
	repo      *MockRepository
	publisher *events.MockPublisher
	service   *service
	ctx       context.Context
	now       time.Time
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.tx = &database.MockTransactor{}
	suite.repo = &MockRepository{}
	suite.publisher = &events.MockPublisher{}
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

	suite.service = NewService(suite.tx, suite.repo, suite.publisher, &Config{Concurrency: 4}, logger.NewNullLogger()).(*service)
	suite.service.now = func() time.Time { return suite.now }
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func activeBet(userID uuid.UUID, betType models.BetType, amount int64, stake string) *models.Bet {
	return &models.Bet{
		ID:           uuid.New(),
		UserID:       userID,
		CompanyRef:   uuid.New(),
		CompanyID:    5,
		TargetUserID: 1,
		BetType:      betType,
		Amount:       amount,
		Stake:        decimal.RequireFromString(stake),
		Status:       models.BetStatusActive,
		CreatedAt:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *ServiceTestSuite) TestSettle_WinningForBet() {
	user := &models.User{ID: uuid.New(), Tokens: 700, WonBets: 1, LostBets: 1, Streak: 1}
	bet := activeBet(user.ID, models.BetTypeFor, 300, "1.53")

	suite.repo.On("LockActiveBet", suite.ctx, bet.ID).Return(bet, nil)
	suite.repo.On("LockUser", suite.ctx, user.ID).Return(user, nil)
	suite.repo.On("SaveUserStats", suite.ctx, user).Return(nil)
	suite.repo.On("ArchiveBet", suite.ctx, mock.MatchedBy(func(e *models.ExpiredBet) bool {
		return e.ID == bet.ID && e.Status == models.BetStatusWon && e.Payout == 459 && e.SettledAt.Equal(suite.now)
	})).Return(nil)
	suite.repo.On("DeleteBet", suite.ctx, bet.ID).Return(nil)
	suite.publisher.On("BetsSettled", suite.ctx, mock.MatchedBy(func(e []events.BetSettled) bool {
		return len(e) == 1 && e[0].BetID == bet.ID && e[0].Payout == 459 && e[0].Status == "won"
	})).Return(nil)

	out, err := suite.service.Settle(suite.ctx, bet.ID, models.ResultWon)

	suite.Require().NoError(err)
	suite.False(out.Skipped)
	suite.Equal(models.BetStatusWon, out.Status)
	suite.Equal(int64(459), out.Payout)
	suite.Equal(int64(1159), user.Tokens)
	suite.Equal(2, user.WonBets)
	suite.Equal(2, user.Streak)
	suite.Equal("66.67", user.SuccessRate.StringFixed(2))
	suite.repo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestSettle_LosingAgainstBet() {
	user := &models.User{ID: uuid.New(), Tokens: 500, WonBets: 3, Streak: 3}
	bet := activeBet(user.ID, models.BetTypeAgainst, 200, "2.00")

	suite.repo.On("LockActiveBet", suite.ctx, bet.ID).Return(bet, nil)
	suite.repo.On("LockUser", suite.ctx, user.ID).Return(user, nil)
	suite.repo.On("SaveUserStats", suite.ctx, user).Return(nil)
	suite.repo.On("ArchiveBet", suite.ctx, mock.MatchedBy(func(e *models.ExpiredBet) bool {
		return e.Status == models.BetStatusLost && e.Payout == 0
	})).Return(nil)
	suite.repo.On("DeleteBet", suite.ctx, bet.ID).Return(nil)
	suite.publisher.On("BetsSettled", suite.ctx, mock.Anything).Return(nil)

	out, err := suite.service.Settle(suite.ctx, bet.ID, models.ResultWon)

	suite.Require().NoError(err)
	suite.Equal(models.BetStatusLost, out.Status)
	suite.Equal(int64(500), user.Tokens)
	suite.Equal(1, user.LostBets)
	suite.Zero(user.Streak)
	suite.Equal("75.00", user.SuccessRate.StringFixed(2))
}

func (suite *ServiceTestSuite) TestSettle_ForfeitLosesAgainstBet() {
	user := &models.User{ID: uuid.New(), Tokens: 800}
	bet := activeBet(user.ID, models.BetTypeAgainst, 200, "2.00")

	suite.repo.On("LockActiveBet", suite.ctx, bet.ID).Return(bet, nil)
	suite.repo.On("LockUser", suite.ctx, user.ID).Return(user, nil)
	suite.repo.On("SaveUserStats", suite.ctx, user).Return(nil)
	suite.repo.On("ArchiveBet", suite.ctx, mock.MatchedBy(func(e *models.ExpiredBet) bool {
		return e.Status == models.BetStatusLost && e.Payout == 0
	})).Return(nil)
	suite.repo.On("DeleteBet", suite.ctx, bet.ID).Return(nil)
	suite.publisher.On("BetsSettled", suite.ctx, mock.Anything).Return(nil)

	out, err := suite.service.Settle(suite.ctx, bet.ID, models.ResultForfeit)

	suite.Require().NoError(err)
	suite.Equal(models.BetStatusLost, out.Status)
	suite.Equal(int64(800), user.Tokens)
	suite.Equal(1, user.LostBets)
}

func (suite *ServiceTestSuite) TestSettle_AlreadyArchivedIsSkipped() {
	betID := uuid.New()
	suite.repo.On("LockActiveBet", suite.ctx, betID).Return(nil, models.ErrBetNotFound)

	out, err := suite.service.Settle(suite.ctx, betID, models.ResultLost)

	suite.NoError(err)
	suite.True(out.Skipped)
	suite.repo.AssertNotCalled(suite.T(), "LockUser", mock.Anything, mock.Anything)
	suite.publisher.AssertNotCalled(suite.T(), "BetsSettled", mock.Anything, mock.Anything)
}

func (suite *ServiceTestSuite) TestSettle_BettorMissing() {
	bet := activeBet(uuid.New(), models.BetTypeFor, 10, "1.50")
	suite.repo.On("LockActiveBet", suite.ctx, bet.ID).Return(bet, nil)
	suite.repo.On("LockUser", suite.ctx, bet.UserID).Return(nil, models.ErrUserNotFound)

	_, err := suite.service.Settle(suite.ctx, bet.ID, models.ResultWon)

	suite.ErrorIs(err, models.ErrBettorNotFound)
	suite.repo.AssertNotCalled(suite.T(), "ArchiveBet", mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "DeleteBet", mock.Anything, mock.Anything)
}

func (suite *ServiceTestSuite) TestSettle_AwaitedResultRejected() {
	_, err := suite.service.Settle(suite.ctx, uuid.New(), models.ResultAwaited)

	suite.ErrorIs(err, models.ErrCandidateAwaited)
	suite.Equal(0, suite.tx.Calls)
}

func (suite *ServiceTestSuite) TestSettle_PublishFailureIsNotFatal() {
	user := &models.User{ID: uuid.New()}
	bet := activeBet(user.ID, models.BetTypeAgainst, 100, "2.61")

	suite.repo.On("LockActiveBet", suite.ctx, bet.ID).Return(bet, nil)
	suite.repo.On("LockUser", suite.ctx, user.ID).Return(user, nil)
	suite.repo.On("SaveUserStats", suite.ctx, user).Return(nil)
	suite.repo.On("ArchiveBet", suite.ctx, mock.Anything).Return(nil)
	suite.repo.On("DeleteBet", suite.ctx, bet.ID).Return(nil)
	suite.publisher.On("BetsSettled", suite.ctx, mock.Anything).Return(errors.New("broker down"))

	out, err := suite.service.Settle(suite.ctx, bet.ID, models.ResultLost)

	suite.NoError(err)
	suite.Equal(int64(261), out.Payout)
}

func (suite *ServiceTestSuite) TestSettleMany_CollectsFailures() {
	good := &models.User{ID: uuid.New(), Tokens: 0}
	won := activeBet(good.ID, models.BetTypeFor, 100, "1.90")
	orphan := activeBet(uuid.New(), models.BetTypeFor, 100, "1.90")
	gone := uuid.New()
	contended := uuid.New()
	broken := activeBet(uuid.New(), models.BetTypeFor, 100, "1.90")
	brokenUser := &models.User{ID: broken.UserID}
	driverErr := errors.New(`ERROR: new row for relation "users" violates check constraint "users_tokens_check" (SQLSTATE 23514)`)

	suite.repo.On("LockActiveBet", mock.Anything, contended).Return(nil, fmt.Errorf("%w: deadlock detected", models.ErrTxConflict))
	suite.repo.On("LockActiveBet", mock.Anything, broken.ID).Return(broken, nil)
	suite.repo.On("LockUser", mock.Anything, broken.UserID).Return(brokenUser, nil)
	suite.repo.On("SaveUserStats", mock.Anything, brokenUser).Return(fmt.Errorf("update bettor: %w", driverErr))
	suite.repo.On("LockActiveBet", mock.Anything, won.ID).Return(won, nil)
	suite.repo.On("LockActiveBet", mock.Anything, orphan.ID).Return(orphan, nil)
	suite.repo.On("LockActiveBet", mock.Anything, gone).Return(nil, models.ErrBetNotFound)
	suite.repo.On("LockUser", mock.Anything, good.ID).Return(good, nil)
	suite.repo.On("LockUser", mock.Anything, orphan.UserID).Return(nil, models.ErrUserNotFound)
	suite.repo.On("SaveUserStats", mock.Anything, good).Return(nil)
	suite.repo.On("ArchiveBet", mock.Anything, mock.Anything).Return(nil)
	suite.repo.On("DeleteBet", mock.Anything, won.ID).Return(nil)
	suite.publisher.On("BetsSettled", suite.ctx, mock.MatchedBy(func(e []events.BetSettled) bool {
		return len(e) == 1 && e[0].BetID == won.ID
	})).Return(nil).Once()

	report := suite.service.SettleMany(suite.ctx, []Job{
		{BetID: won.ID, Result: models.ResultWon},
		{BetID: orphan.ID, Result: models.ResultWon},
		{BetID: gone, Result: models.ResultWon},
		{BetID: contended, Result: models.ResultWon},
		{BetID: broken.ID, Result: models.ResultWon},
	})

	suite.Equal(1, report.Settled)
	suite.Equal(1, report.Skipped)
	suite.Require().Len(report.Failed, 3)
	codes := make(map[uuid.UUID]string, len(report.Failed))
	for _, f := range report.Failed {
		codes[f.BetID] = f.Code
	}
	suite.Equal(map[uuid.UUID]string{
		orphan.ID: FailureBettorNotFound,
		contended: FailureConflict,
		broken.ID: FailureInternal,
	}, codes)
	suite.Equal(int64(190), good.Tokens)

	body, err := json.Marshal(report)
	suite.Require().NoError(err)
	suite.NotContains(string(body), "SQLSTATE")
	suite.NotContains(string(body), "bettor not found")
	suite.publisher.AssertNumberOfCalls(suite.T(), "BetsSettled", 1)
}

func (suite *ServiceTestSuite) TestSettleMany_Empty() {
	report := suite.service.SettleMany(suite.ctx, nil)

	suite.Zero(report.Settled)
	suite.NotNil(report.Failed)
	suite.False(report.HasFailures())
}
