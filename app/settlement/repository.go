package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) LockActiveBet(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND status = ?", betID, models.BetStatusActive).
		First(&bet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrBetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *repository) LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) SaveUserStats(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"tokens":       user.Tokens,
			"won_bets":     user.WonBets,
			"lost_bets":    user.LostBets,
			"streak":       user.Streak,
			"success_rate": user.SuccessRate,
		}).Error
}

func (r *repository) ArchiveBet(ctx context.Context, archived *models.ExpiredBet) error {
	return r.db.WithContext(ctx).Create(archived).Error
}

func (r *repository) DeleteBet(ctx context.Context, betID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", betID).
		Delete(&models.Bet{}).Error
}

func (r *repository) GetBet(ctx context.Context, betID uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).Where("id = ?", betID).First(&bet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrBetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *repository) IsArchived(ctx context.Context, betID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ExpiredBet{}).
		Where("id = ?", betID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ActiveBets(ctx context.Context, companyRef uuid.UUID, candidateID *int) ([]models.Bet, error) {
	query := r.db.WithContext(ctx).
		Where("company_ref = ? AND status = ?", companyRef, models.BetStatusActive)
	if candidateID != nil {
		query = query.Where("target_user_id = ?", *candidateID)
	}

	var bets []models.Bet
	err := query.Order("created_at ASC").Find(&bets).Error
	return bets, err
}
