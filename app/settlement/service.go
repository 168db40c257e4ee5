package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/metrics"
	"github.com/joefazee/placement/models"
	"golang.org/x/sync/errgroup"
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

// Settle resolves one bet in its own transaction: the bet row is locked
// while still active, the bettor is credited and their statistics updated,
// and the bet moves to the archive. A bet that is already archived is
// skipped, so settling twice never pays twice.
func (s *service) Settle(ctx context.Context, betID uuid.UUID, result models.CandidateResult) (*Outcome, error) {
	out, event, err := s.settle(ctx, betID, result)
	if err != nil {
		return nil, err
	}
	if event != nil {
		s.publish(ctx, []events.BetSettled{*event})
	}
	return out, nil
}

// settle commits one bet and returns the event to publish for it, which is
// nil when the bet was skipped.
func (s *service) settle(ctx context.Context, betID uuid.UUID, result models.CandidateResult) (*Outcome, *events.BetSettled, error) {
	if !result.Settles() {
		return nil, nil, models.ErrCandidateAwaited
	}

	var archived *models.ExpiredBet
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		archived = nil
		repo := s.repo.WithTx(tx)

		bet, err := repo.LockActiveBet(ctx, betID)
		if errors.Is(err, models.ErrBetNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		user, err := repo.LockUser(ctx, bet.UserID)
		if errors.Is(err, models.ErrUserNotFound) {
			return fmt.Errorf("bet %s: %w", bet.ID, models.ErrBettorNotFound)
		}
		if err != nil {
			return err
		}

		record, err := bet.Settle(result, s.now())
		if err != nil {
			return err
		}
		user.ApplySettlement(record.IsWin(), record.Payout)

		if err := repo.SaveUserStats(ctx, user); err != nil {
			return fmt.Errorf("update bettor: %w", err)
		}
		if err := repo.ArchiveBet(ctx, record); err != nil {
			return fmt.Errorf("archive bet: %w", err)
		}
		if err := repo.DeleteBet(ctx, bet.ID); err != nil {
			return fmt.Errorf("delete bet: %w", err)
		}

		archived = record
		return nil
	})
	if err != nil {
		metrics.SettlementFailures.Inc()
		s.log.Error(err, map[string]interface{}{
			"bet_id": betID,
			"result": result,
		})
		return nil, nil, err
	}

	if archived == nil {
		return &Outcome{BetID: betID, Skipped: true}, nil, nil
	}

	metrics.ObserveSettled(string(archived.Status))
	event := &events.BetSettled{
		BetID:       archived.ID,
		UserID:      archived.UserID,
		CompanyID:   archived.CompanyID,
		CandidateID: archived.TargetUserID,
		Status:      string(archived.Status),
		Payout:      archived.Payout,
		SettledAt:   archived.SettledAt,
	}
	return &Outcome{
		BetID:  archived.ID,
		Status: archived.Status,
		Payout: archived.Payout,
	}, event, nil
}

// publish sends settled events after commit. A failure is logged and does
// not undo the settlement.
func (s *service) publish(ctx context.Context, settled []events.BetSettled) {
	if len(settled) == 0 {
		return
	}
	if err := s.publisher.BetsSettled(ctx, settled); err != nil {
		s.log.Error(fmt.Errorf("publish bets settled: %w", err), map[string]interface{}{
			"bets": len(settled),
		})
	}
}

// SettleMany settles jobs concurrently, at most config.Concurrency at a
// time. A failing bet is recorded in the report and does not stop the rest.
func (s *service) SettleMany(ctx context.Context, jobs []Job) *Report {
	report := &Report{Failed: []Failure{}}
	if len(jobs) == 0 {
		return report
	}

	var (
		mu      sync.Mutex
		g       errgroup.Group
		settled = make([]events.BetSettled, 0, len(jobs))
	)
	g.SetLimit(s.config.Concurrency)

	for _, job := range jobs {
		g.Go(func() error {
			out, event, err := s.settle(ctx, job.BetID, job.Result)

			mu.Lock()
			defer mu.Unlock()
			if event != nil {
				settled = append(settled, *event)
			}
			switch {
			case err != nil:
				report.Failed = append(report.Failed, Failure{BetID: job.BetID, Code: failureCode(err)})
			case out.Skipped:
				report.Skipped++
			default:
				report.Settled++
			}
			return nil
		})
	}
	_ = g.Wait()
	s.publish(ctx, settled)

	if report.HasFailures() {
		s.log.Warn("settlement finished with failures", map[string]interface{}{
			"settled": report.Settled,
			"skipped": report.Skipped,
			"failed":  len(report.Failed),
		})
	}
	return report
}
