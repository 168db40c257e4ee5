package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/companies"
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

func (r *repository) LockCompany(ctx context.Context, key models.CompanyKey) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(key.Scope).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_ref = ?", company.ID).
		Order("position ASC").
		Find(&company.Candidates).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) GetCompanyByRef(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Preload("Candidates", companies.OrderedCandidates).
		Where("id = ?", id).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) UpdateCompanyStatus(ctx context.Context, id uuid.UUID, status models.CompanyStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) UpdateCandidateResult(ctx context.Context, candidateRowID uuid.UUID, result models.CandidateResult) error {
	return r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("id = ?", candidateRowID).
		Update("result", result).Error
}
