package betting

import (
	"fmt"
	"math"
	"time"

	"github.com/joefazee/placement/app/stakes"
	"github.com/joefazee/placement/models"
)

type poolKey struct {
	candidate int
	side      models.BetType
}

// placement is the result of applying a batch to a locked company and bettor.
type placement struct {
	bets    []*models.Bet
	touched []*models.Candidate
	total   int64
}

// plan checks every precondition of the batch first and only then applies
// it to company and user in memory. On error neither is modified.
//
// Wagers are applied in request order: each one grows its pool, the stakes
// are recomputed, and the bet locks the post-update stake of its side.
func plan(company *models.Company, user *models.User, wagers []WagerRequest, now time.Time) (*placement, error) {
	if len(wagers) == 0 {
		return nil, models.ErrEmptyBetBatch
	}
	if !company.IsOpen() {
		return nil, models.ErrCompanyNotOpen
	}

	total, err := sumWagers(wagers)
	if err != nil {
		return nil, err
	}
	if company.TotalTokenBet > math.MaxInt64-total {
		return nil, models.ErrPoolOverflow
	}

	// pool growth per candidate side, checked before anything is applied
	growth := make(map[poolKey]int64, len(wagers))
	for i, w := range wagers {
		if !w.BetType.IsValid() {
			return nil, fmt.Errorf("bets[%d]: %w", i, models.ErrInvalidBetType)
		}
		cand, ok := company.FindCandidate(w.TargetUserID)
		if !ok {
			return nil, fmt.Errorf("candidate %d: %w", w.TargetUserID, models.ErrCandidateNotFound)
		}
		if cand.IsResolved() {
			return nil, fmt.Errorf("candidate %d: %w", w.TargetUserID, models.ErrCandidateResolved)
		}
		key := poolKey{candidate: cand.CandidateID, side: w.BetType}
		growth[key] += w.Amount
		if !cand.CanAbsorb(w.BetType, growth[key]) {
			return nil, fmt.Errorf("candidate %d: %w", w.TargetUserID, models.ErrPoolOverflow)
		}
	}
	if !user.CanAfford(total) {
		return nil, models.ErrInsufficientTokens
	}

	p := &placement{
		bets:  make([]*models.Bet, 0, len(wagers)),
		total: total,
	}
	seen := make(map[int]bool, len(wagers))
	for _, w := range wagers {
		cand, _ := company.FindCandidate(w.TargetUserID)
		if err := cand.AddToPool(w.BetType, w.Amount); err != nil {
			return nil, err
		}
		stakes.Refresh(cand)

		p.bets = append(p.bets, &models.Bet{
			UserID:               user.ID,
			CompanyRef:           company.ID,
			CompanyID:            company.CompanyID,
			TargetUserID:         cand.CandidateID,
			TargetUserName:       cand.Name,
			TargetUserEnrollment: cand.Enrollment,
			BetType:              w.BetType,
			Amount:               w.Amount,
			Stake:                cand.StakeFor(w.BetType),
			Status:               models.BetStatusActive,
			CreatedAt:            now,
		})
		if !seen[cand.CandidateID] {
			seen[cand.CandidateID] = true
			p.touched = append(p.touched, cand)
		}
	}

	company.TotalTokenBet += total
	if err := user.Debit(total); err != nil {
		return nil, err
	}
	return p, nil
}
