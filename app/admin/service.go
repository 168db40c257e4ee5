package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/companies"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/individuals"
	"github.com/joefazee/placement/app/settlement"
	"github.com/joefazee/placement/app/stakes"
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dependencies groups what the admin service needs from other modules.
type Dependencies struct {
	Tx         database.Transactor
	Repo       Repository
	Directory  individuals.Repository
	Bets       settlement.Repository
	Settler    settlement.Service
	Publisher  events.Publisher
	Logger     logger.Logger
	TimeSource func() time.Time
}

type service struct {
	tx        database.Transactor
	repo      Repository
	directory individuals.Repository
	bets      settlement.Repository
	settler   settlement.Service
	publisher events.Publisher
	log       logger.Logger
	now       func() time.Time
}

func NewService(deps Dependencies) Service {
	s := &service{
		tx:        deps.Tx,
		repo:      deps.Repo,
		directory: deps.Directory,
		bets:      deps.Bets,
		settler:   deps.Settler,
		publisher: deps.Publisher,
		log:       deps.Logger,
		now:       deps.TimeSource,
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SetCompanyStatus updates the company and, when it expires, settles every
// active bet on it. Bets on candidates still awaited at expiry settle with
// ExpiredAwaitedResult.
func (s *service) SetCompanyStatus(ctx context.Context, key models.CompanyKey, status models.CompanyStatus) (*ResolutionResponse, error) {
	if !status.IsValid() {
		return nil, models.ErrInvalidCompanyStatus
	}

	var company *models.Company
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		c, err := repo.LockCompany(ctx, key)
		if err != nil {
			return err
		}
		if c.Status != status {
			if err := repo.UpdateCompanyStatus(ctx, c.ID, status); err != nil {
				return fmt.Errorf("update status: %w", err)
			}
			c.Status = status
		}
		if err := s.directory.WithTx(tx).SyncCompany(ctx, c); err != nil {
			return fmt.Errorf("sync individuals: %w", err)
		}
		company = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &settlement.Report{Failed: []settlement.Failure{}}
	if company.IsExpired() {
		report, err = s.fanOut(ctx, company, nil)
		if err != nil {
			return nil, err
		}
	}

	skim := decimal.Zero
	for i := range company.Candidates {
		skim = skim.Add(stakes.HouseSkim(company.Candidates[i].ForTokens, company.Candidates[i].AgainstTokens))
	}
	s.announce(ctx, events.CompanyResolved{
		CompanyID: company.CompanyID,
		Status:    string(company.Status),
		HouseSkim: skim,
	}, report)

	return &ResolutionResponse{Company: companies.ToResponse(company), Settlement: report}, nil
}

// SetCandidateResult records a final result for one candidate and settles
// the active bets on it. Repeating the current result runs the settlement
// again, which picks up bets an earlier run failed on.
func (s *service) SetCandidateResult(ctx context.Context, key models.CompanyKey, candidateID int, result models.CandidateResult) (*ResolutionResponse, error) {
	if !result.IsTerminal() {
		return nil, models.ErrInvalidResult
	}

	var (
		company *models.Company
		cand    *models.Candidate
	)
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		c, err := repo.LockCompany(ctx, key)
		if err != nil {
			return err
		}
		target, ok := c.FindCandidate(candidateID)
		if !ok {
			return fmt.Errorf("candidate %d: %w", candidateID, models.ErrCandidateNotFound)
		}
		changed, err := target.SetResult(result)
		if err != nil {
			return err
		}
		if changed {
			if err := repo.UpdateCandidateResult(ctx, target.ID, result); err != nil {
				return fmt.Errorf("update result: %w", err)
			}
			if err := s.directory.WithTx(tx).SyncCompany(ctx, c); err != nil {
				return fmt.Errorf("sync individuals: %w", err)
			}
		}
		company, cand = c, target
		return nil
	})
	if err != nil {
		return nil, err
	}

	report, err := s.fanOut(ctx, company, &candidateID)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, events.CompanyResolved{
		CompanyID:   company.CompanyID,
		CandidateID: &candidateID,
		Result:      string(cand.Result),
		HouseSkim:   stakes.HouseSkim(cand.ForTokens, cand.AgainstTokens),
	}, report)

	return &ResolutionResponse{Company: companies.ToResponse(company), Settlement: report}, nil
}

// SettleBet settles a single bet against its candidate's current result.
// A bet that is already archived reports as skipped.
func (s *service) SettleBet(ctx context.Context, betID uuid.UUID) (*settlement.Outcome, error) {
	bet, err := s.bets.GetBet(ctx, betID)
	if errors.Is(err, models.ErrBetNotFound) {
		archived, aerr := s.bets.IsArchived(ctx, betID)
		if aerr != nil {
			return nil, aerr
		}
		if archived {
			return &settlement.Outcome{BetID: betID, Skipped: true}, nil
		}
		return nil, models.ErrBetNotFound
	}
	if err != nil {
		return nil, err
	}

	company, err := s.repo.GetCompanyByRef(ctx, bet.CompanyRef)
	if err != nil {
		return nil, err
	}
	cand, ok := company.FindCandidate(bet.TargetUserID)
	if !ok {
		return nil, fmt.Errorf("candidate %d: %w", bet.TargetUserID, models.ErrCandidateNotFound)
	}
	result, ok := effectiveResult(company, cand)
	if !ok {
		return nil, models.ErrCandidateAwaited
	}

	return s.settler.Settle(ctx, betID, result)
}

// fanOut settles the active bets of company, or of one of its candidates.
func (s *service) fanOut(ctx context.Context, company *models.Company, candidateID *int) (*settlement.Report, error) {
	bets, err := s.bets.ActiveBets(ctx, company.ID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list active bets: %w", err)
	}

	jobs := make([]settlement.Job, 0, len(bets))
	for i := range bets {
		cand, ok := company.FindCandidate(bets[i].TargetUserID)
		if !ok {
			continue
		}
		result, ok := effectiveResult(company, cand)
		if !ok {
			continue
		}
		jobs = append(jobs, settlement.Job{BetID: bets[i].ID, Result: result})
	}

	report := s.settler.SettleMany(ctx, jobs)
	s.log.Info("settlement fan-out finished", map[string]interface{}{
		"company_id": company.CompanyID,
		"settled":    report.Settled,
		"skipped":    report.Skipped,
		"failed":     len(report.Failed),
	})
	return report, nil
}

func (s *service) announce(ctx context.Context, event events.CompanyResolved, report *settlement.Report) {
	event.Settled = report.Settled
	event.Skipped = report.Skipped
	event.Failed = len(report.Failed)
	event.ResolvedAt = s.now()

	if err := s.publisher.CompanyResolved(ctx, event); err != nil {
		s.log.Error(fmt.Errorf("publish company resolved: %w", err), map[string]interface{}{
			"company_id": event.CompanyID,
		})
	}
}
