package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if database.IsUniqueViolation(err) {
		return models.ErrEmailTaken
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *repository) first(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("tokens DESC").
		Order("success_rate DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
