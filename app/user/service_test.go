package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/joefazee/placement/internal/cache"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/security"
	"github.com/joefazee/placement/models"
)

type ServiceTestSuite struct {
	suite.Suite
	service    Service
	repo       *MockRepository
	tokenMaker *security.MockMaker
	board      *cache.MockCache[[]LeaderboardEntry]
	cfg        *Config
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.repo = &MockRepository{}
	suite.tokenMaker = &security.MockMaker{}
	suite.board = &cache.MockCache[[]LeaderboardEntry]{}
	suite.cfg = GetDefaultConfig()
	suite.cfg.InitialTokens = 5000
	suite.service = NewService(suite.repo, suite.tokenMaker, suite.board, suite.cfg, logger.NewNullLogger())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (suite *ServiceTestSuite) registeredUser(password string) *models.User {
	hash, err := models.HashPassword(password)
	suite.Require().NoError(err)
	return &models.User{
		ID:           uuid.New(),
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Phone:        "+919876543210",
		PasswordHash: hash,
		Role:         models.RoleUser,
		Tokens:       100000,
	}
}

func (suite *ServiceTestSuite) TestRegister_Success() {
	req := &RegisterUserRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "+919876543210",
		Password: "password123",
	}

	suite.repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == req.Email &&
			u.Tokens == 5000 &&
			u.Role == models.RoleUser &&
			models.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Run(func(args mock.Arguments) {
		u := args.Get(1).(*models.User)
		u.ID = uuid.New()
		u.CreatedAt = time.Now()
	}).Return(nil)

	result, err := suite.service.Register(context.Background(), req)

	suite.NoError(err)
	suite.Equal(req.Email, result.Email)
	suite.Equal(int64(5000), result.Tokens)
	suite.NotEqual(uuid.Nil, result.ID)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestRegister_ShortPassword() {
	_, err := suite.service.Register(context.Background(), &RegisterUserRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "short",
	})

	suite.ErrorIs(err, models.ErrPasswordTooShort)
	suite.repo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ServiceTestSuite) TestRegister_EmailTaken() {
	suite.repo.On("Create", mock.Anything, mock.Anything).Return(models.ErrEmailTaken)

	_, err := suite.service.Register(context.Background(), &RegisterUserRequest{
		Name: "Asha Rao", Email: "asha@example.com", Password: "password123",
	})

	suite.ErrorIs(err, models.ErrEmailTaken)
}

func (suite *ServiceTestSuite) TestLogin_ByEmail() {
	user := suite.registeredUser("password123")
	expires := time.Now().Add(24 * time.Hour)

	suite.repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(user, nil)
	suite.tokenMaker.On("CreateToken", user.ID, "user", 24*time.Hour).
		Return("token-123", &security.Payload{UserID: user.ID, ExpiredAt: expires}, nil)

	resp, err := suite.service.Login(context.Background(), &LoginRequest{
		Identity: " Asha@Example.com ",
		Password: "password123",
	})

	suite.NoError(err)
	suite.Equal("token-123", resp.AccessToken)
	suite.Equal(expires, resp.ExpiresAt)
	suite.Equal(user.ID, resp.User.ID)
	suite.tokenMaker.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestLogin_ByPhone() {
	user := suite.registeredUser("password123")

	suite.repo.On("GetByPhone", mock.Anything, "+919876543210").Return(user, nil)
	suite.tokenMaker.On("CreateToken", user.ID, "user", 24*time.Hour).
		Return("token-123", &security.Payload{UserID: user.ID}, nil)

	_, err := suite.service.Login(context.Background(), &LoginRequest{
		Identity: "9876543210",
		Password: "password123",
	})

	suite.NoError(err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestLogin_UnknownUser() {
	suite.repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, models.ErrUserNotFound)

	_, err := suite.service.Login(context.Background(), &LoginRequest{
		Identity: "ghost@example.com",
		Password: "password123",
	})

	suite.ErrorIs(err, models.ErrInvalidLogin)
}

func (suite *ServiceTestSuite) TestLogin_WrongPassword() {
	user := suite.registeredUser("password123")
	suite.repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := suite.service.Login(context.Background(), &LoginRequest{
		Identity: user.Email,
		Password: "wrong-password",
	})

	suite.ErrorIs(err, models.ErrInvalidLogin)
	suite.tokenMaker.AssertNotCalled(suite.T(), "CreateToken", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ServiceTestSuite) TestLogin_StoreFailure() {
	boom := errors.New("connection refused")
	suite.repo.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, boom)

	_, err := suite.service.Login(context.Background(), &LoginRequest{
		Identity: "asha@example.com",
		Password: "password123",
	})

	suite.ErrorIs(err, boom)
	suite.NotErrorIs(err, models.ErrInvalidLogin)
}

func (suite *ServiceTestSuite) TestGetProfile() {
	user := suite.registeredUser("password123")
	suite.repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	profile, err := suite.service.GetProfile(context.Background(), user.ID)

	suite.NoError(err)
	suite.Equal(user.Name, profile.Name)
	suite.Equal(user.Tokens, profile.Tokens)
}

func (suite *ServiceTestSuite) TestGetProfile_NotFound() {
	id := uuid.New()
	suite.repo.On("GetByID", mock.Anything, id).Return(nil, models.ErrUserNotFound)

	_, err := suite.service.GetProfile(context.Background(), id)

	suite.ErrorIs(err, models.ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestLeaderboard_CacheHit() {
	cached := []LeaderboardEntry{{Rank: 1, Name: "Asha Rao", Tokens: 150000}}
	suite.board.On("Get", mock.Anything, leaderboardKey).Return(cached, nil)

	entries, err := suite.service.Leaderboard(context.Background())

	suite.NoError(err)
	suite.Equal(cached, entries)
	suite.repo.AssertNotCalled(suite.T(), "Leaderboard", mock.Anything, mock.Anything)
}

func (suite *ServiceTestSuite) TestLeaderboard_CacheMiss() {
	users := []models.User{
		{ID: uuid.New(), Name: "Asha Rao", Tokens: 150000},
		{ID: uuid.New(), Name: "Vikram Shah", Tokens: 90000},
	}
	suite.board.On("Get", mock.Anything, leaderboardKey).Return(nil, cache.ErrCacheMiss)
	suite.repo.On("Leaderboard", mock.Anything, 20).Return(users, nil)
	suite.board.On("Set", mock.Anything, leaderboardKey, mock.MatchedBy(func(e []LeaderboardEntry) bool {
		return len(e) == 2 && e[0].Rank == 1 && e[1].Name == "Vikram Shah"
	}), 30*time.Second).Return(nil)

	entries, err := suite.service.Leaderboard(context.Background())

	suite.NoError(err)
	suite.Len(entries, 2)
	suite.board.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestLeaderboard_CacheDown() {
	suite.board.On("Get", mock.Anything, leaderboardKey).Return(nil, errors.New("redis down"))
	suite.repo.On("Leaderboard", mock.Anything, 20).Return([]models.User{{Name: "Asha Rao"}}, nil)
	suite.board.On("Set", mock.Anything, leaderboardKey, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	entries, err := suite.service.Leaderboard(context.Background())

	suite.NoError(err)
	suite.Len(entries, 1)
}

func (suite *ServiceTestSuite) TestLeaderboard_StoreFailure() {
	suite.board.On("Get", mock.Anything, leaderboardKey).Return(nil, cache.ErrCacheMiss)
	suite.repo.On("Leaderboard", mock.Anything, 20).Return(nil, errors.New("timeout"))

	_, err := suite.service.Leaderboard(context.Background())

	suite.Error(err)
	suite.board.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
