package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	// Leaderboard returns up to limit users ranked by balance, then success rate.
	Leaderboard(ctx context.Context, limit int) ([]models.User, error)
}

// Service defines the interface for user business logic.
type Service interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*Response, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

// AuthService resolves what an authenticated caller may do.
type AuthService interface {
	GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
}
