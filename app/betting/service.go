package betting

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/companies"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/stakes"
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/metrics"
	"github.com/joefazee/placement/models"
	"gorm.io/gorm"
)

type service struct {
	tx        database.Transactor
	repo      Repository
	publisher events.Publisher
	config    *Config
	log       logger.Logger
	now       func() time.Time
}

// NewService creates a new betting service
func NewService(tx database.Transactor, repo Repository, publisher events.Publisher, config *Config, log logger.Logger) Service {
	if config == nil {
		config = GetDefaultConfig()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		tx:        tx,
		repo:      repo,
		publisher: publisher,
		config:    config,
		log:       log,
		now:       time.Now,
	}
}

// PlaceBets applies a whole batch in one transaction: the company row, its
// candidates and then the bettor are locked, every wager is checked, and
// only then are pools, stakes, bets and the balance written.
func (s *service) PlaceBets(ctx context.Context, userID uuid.UUID, req *PlaceBetsRequest) (*PlaceBetsResponse, error) {
	if len(req.Bets) == 0 {
		return nil, models.ErrEmptyBetBatch
	}
	if len(req.Bets) > s.config.MaxBatchSize {
		return nil, models.ErrBetBatchTooLarge
	}
	key, err := models.ParseCompanyKey(req.CompanyID)
	if err != nil {
		return nil, err
	}

	var (
		company *models.Company
		placed  *placement
	)
	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		c, err := repo.LockCompany(ctx, key)
		if err != nil {
			return err
		}
		user, err := repo.LockUser(ctx, userID)
		if err != nil {
			return err
		}

		p, err := plan(c, user, req.Bets, s.now())
		if err != nil {
			return err
		}

		if err := repo.SaveCandidates(ctx, p.touched); err != nil {
			return fmt.Errorf("save pools: %w", err)
		}
		if err := repo.UpdateCompanyTotal(ctx, c.ID, c.TotalTokenBet); err != nil {
			return fmt.Errorf("update company total: %w", err)
		}
		if err := repo.CreateBets(ctx, p.bets); err != nil {
			return fmt.Errorf("create bets: %w", err)
		}
		if err := repo.UpdateUserTokens(ctx, user.ID, user.Tokens); err != nil {
			return fmt.Errorf("debit bettor: %w", err)
		}

		company, placed = c, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &PlaceBetsResponse{
		Bets:           make([]BetResponse, 0, len(placed.bets)),
		TotalBetAmount: placed.total,
		UpdatedCompany: companies.ToResponse(company),
	}
	evts := make([]events.BetPlaced, 0, len(placed.bets))
	for _, b := range placed.bets {
		resp.Bets = append(resp.Bets, ToBetResponse(b))
		metrics.ObserveBetPlaced(string(b.BetType), b.Amount)
		evts = append(evts, events.BetPlaced{
			BetID:       b.ID,
			UserID:      b.UserID,
			CompanyID:   b.CompanyID,
			CandidateID: b.TargetUserID,
			BetType:     string(b.BetType),
			Amount:      b.Amount,
			Stake:       b.Stake,
			PlacedAt:    b.CreatedAt,
		})
	}
	if err := s.publisher.BetsPlaced(ctx, evts); err != nil {
		s.log.Error(fmt.Errorf("publish bets placed: %w", err), map[string]interface{}{
			"company_id": company.CompanyID,
			"bets":       len(evts),
		})
	}

	s.log.Info("bets placed", map[string]interface{}{
		"user_id":    userID,
		"company_id": company.CompanyID,
		"bets":       len(placed.bets),
		"total":      placed.total,
	})
	return resp, nil
}

// RecalculateStakes recomputes every candidate's stakes from its current pools.
func (s *service) RecalculateStakes(ctx context.Context, key models.CompanyKey) (*companies.CompanyResponse, error) {
	var company *models.Company
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		c, err := repo.LockCompany(ctx, key)
		if err != nil {
			return err
		}
		all := make([]*models.Candidate, 0, len(c.Candidates))
		for i := range c.Candidates {
			stakes.Refresh(&c.Candidates[i])
			all = append(all, &c.Candidates[i])
		}
		if err := repo.SaveCandidates(ctx, all); err != nil {
			return fmt.Errorf("save stakes: %w", err)
		}
		company = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := companies.ToResponse(company)
	return &resp, nil
}

// GetUserBets returns open and archived bets of a user, newest first.
func (s *service) GetUserBets(ctx context.Context, userID uuid.UUID) ([]BetResponse, error) {
	active, err := s.repo.GetActiveBetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("active bets: %w", err)
	}
	archived, err := s.repo.GetExpiredBetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("archived bets: %w", err)
	}

	out := make([]BetResponse, 0, len(active)+len(archived))
	for i := range active {
		out = append(out, ToBetResponse(&active[i]))
	}
	for i := range archived {
		out = append(out, ToArchivedResponse(&archived[i]))
	}
	slices.SortStableFunc(out, func(a, b BetResponse) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
