package companies

import (
	"context"
	"errors"

	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
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

// OrderedCandidates preloads candidates in their display order.
func OrderedCandidates(db *gorm.DB) *gorm.DB {
	return db.Order("candidates.position ASC")
}

func (r *repository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) GetByKey(ctx context.Context, key models.CompanyKey) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Scopes(key.Scope).
		Preload("Candidates", OrderedCandidates).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Company, int64, error) {
	filters.normalize()

	byStatus := func(db *gorm.DB) *gorm.DB {
		if filters.Status != "" {
			return db.Where("status = ?", filters.Status)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Company{}).Scopes(byStatus).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Company
	err := r.db.WithContext(ctx).
		Scopes(byStatus).
		Preload("Candidates", OrderedCandidates).
		Order("company_id DESC").
		Offset((filters.Page - 1) * filters.PerPage).
		Limit(filters.PerPage).
		Find(&out).Error
	return out, total, err
}
