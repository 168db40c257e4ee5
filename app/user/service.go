package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joefazee/placement/internal/cache"
	"github.com/joefazee/placement/internal/formatter"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/security"
	"github.com/joefazee/placement/models"
)

const leaderboardKey = "leaderboard"

type service struct {
	repo       Repository
	tokenMaker security.Maker
	board      cache.Cache[[]LeaderboardEntry]
	cfg        *Config
	log        logger.Logger
}

// NewService creates a new user service.
func NewService(repo Repository,
	tokenMaker security.Maker,
	board cache.Cache[[]LeaderboardEntry],
	cfg *Config,
	log logger.Logger) Service {
	return &service{
		repo:       repo,
		tokenMaker: tokenMaker,
		board:      board,
		cfg:        cfg,
		log:        log,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterUserRequest) (*Response, error) {
	hashedPassword, err := models.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		Tokens:       s.cfg.InitialTokens,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := ToResponse(user)
	return &resp, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.lookup(ctx, strings.TrimSpace(req.Identity))
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if !models.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, models.ErrInvalidLogin
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.ID, string(user.Role), s.cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   payload.ExpiredAt,
		User:        ToResponse(user),
	}, nil
}

func (s *service) lookup(ctx context.Context, identity string) (*models.User, error) {
	if models.IsEmail(identity) {
		return s.repo.GetByEmail(ctx, strings.ToLower(identity))
	}
	if phone, err := formatter.FormatPhone(identity, defaultPhoneRegion); err == nil {
		identity = phone
	}
	return s.repo.GetByPhone(ctx, identity)
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(user)
	return &resp, nil
}

func (s *service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	entries, err := s.board.Get(ctx, leaderboardKey)
	if err == nil {
		return entries, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Error(err, map[string]interface{}{"cache": leaderboardKey})
	}

	users, err := s.repo.Leaderboard(ctx, s.cfg.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries = toLeaderboard(users)
	if err := s.board.Set(ctx, leaderboardKey, entries, s.cfg.LeaderboardTTL); err != nil {
		s.log.Error(err, map[string]interface{}{"cache": leaderboardKey})
	}
	return entries, nil
}
