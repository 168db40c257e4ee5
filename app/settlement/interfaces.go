package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

// Repository defines data access for settling and archiving bets
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// LockActiveBet locks the bet row while it is still active. It returns
	// models.ErrBetNotFound once the bet has been archived.
	LockActiveBet(ctx context.Context, betID uuid.UUID) (*models.Bet, error)
	LockUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	SaveUserStats(ctx context.Context, user *models.User) error
	ArchiveBet(ctx context.Context, archived *models.ExpiredBet) error
	DeleteBet(ctx context.Context, betID uuid.UUID) error

	GetBet(ctx context.Context, betID uuid.UUID) (*models.Bet, error)
	IsArchived(ctx context.Context, betID uuid.UUID) (bool, error)
	// ActiveBets lists unsettled bets of a company, optionally narrowed to
	// one candidate.
	ActiveBets(ctx context.Context, companyRef uuid.UUID, candidateID *int) ([]models.Bet, error)
}

// Service settles bets
type Service interface {
	Settle(ctx context.Context, betID uuid.UUID, result models.CandidateResult) (*Outcome, error)
	SettleMany(ctx context.Context, jobs []Job) *Report
}
