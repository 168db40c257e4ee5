package betting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) LockCompany(ctx context.Context, key models.CompanyKey) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
		Scopes(key.Scope).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(forUpdate).
		Where("company_ref = ?", company.ID).
		Order("position ASC").
		Find(&company.Candidates).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(forUpdate).
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

func (r *repository) SaveCandidates(ctx context.Context, candidates []*models.Candidate) error {
	for _, c := range candidates {
		err := r.db.WithContext(ctx).
			Model(&models.Candidate{}).
			Where("id = ?", c.ID).
			Updates(map[string]interface{}{
				"for_tokens":     c.ForTokens,
				"against_tokens": c.AgainstTokens,
				"for_stake":      c.ForStake,
				"against_stake":  c.AgainstStake,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) UpdateCompanyTotal(ctx context.Context, companyID uuid.UUID, total int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", companyID).
		Update("total_token_bet", total).Error
}

func (r *repository) CreateBets(ctx context.Context, bets []*models.Bet) error {
	if len(bets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&bets).Error
}

func (r *repository) UpdateUserTokens(ctx context.Context, userID uuid.UUID, tokens int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("tokens", tokens).Error
}

func (r *repository) GetActiveBetsByUser(ctx context.Context, userID uuid.UUID) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bets).Error
	return bets, err
}

func (r *repository) GetExpiredBetsByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpiredBet, error) {
	var bets []models.ExpiredBet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bets).Error
	return bets, err
}
