package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/settlement"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

// Repository defines the company writes admin resolution needs
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	LockCompany(ctx context.Context, key models.CompanyKey) (*models.Company, error)
	GetCompanyByRef(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompanyStatus(ctx context.Context, id uuid.UUID, status models.CompanyStatus) error
	UpdateCandidateResult(ctx context.Context, candidateRowID uuid.UUID, result models.CandidateResult) error
}

// Service defines administrator resolution of companies and candidates
type Service interface {
	SetCompanyStatus(ctx context.Context, key models.CompanyKey, status models.CompanyStatus) (*ResolutionResponse, error)
	SetCandidateResult(ctx context.Context, key models.CompanyKey, candidateID int, result models.CandidateResult) (*ResolutionResponse, error)
	SettleBet(ctx context.Context, betID uuid.UUID) (*settlement.Outcome, error)
}
