package betting

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/companies"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

// Repository defines the locked reads and writes bet placement needs
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// LockCompany loads the company and its candidates with row locks.
	LockCompany(ctx context.Context, key models.CompanyKey) (*models.Company, error)
	LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error)

	SaveCandidates(ctx context.Context, candidates []*models.Candidate) error
	UpdateCompanyTotal(ctx context.Context, companyID uuid.UUID, total int64) error
	CreateBets(ctx context.Context, bets []*models.Bet) error
	UpdateUserTokens(ctx context.Context, userID uuid.UUID, tokens int64) error

	GetActiveBetsByUser(ctx context.Context, userID uuid.UUID) ([]models.Bet, error)
	GetExpiredBetsByUser(ctx context.Context, userID uuid.UUID) ([]models.ExpiredBet, error)
}

// Service defines bet placement
type Service interface {
	PlaceBets(ctx context.Context, userID uuid.UUID, req *PlaceBetsRequest) (*PlaceBetsResponse, error)
	RecalculateStakes(ctx context.Context, key models.CompanyKey) (*companies.CompanyResponse, error)
	GetUserBets(ctx context.Context, userID uuid.UUID) ([]BetResponse, error)
}
