package settlement

import (
	"errors"

	"github.com/google/uuid"
	"github.com/joefazee/placement/models"
)

// Job asks for one bet to be settled against a candidate result.
type Job struct {
	BetID  uuid.UUID
	Result models.CandidateResult
}

// Outcome describes what Settle did with one bet.
type Outcome struct {
	BetID   uuid.UUID        `json:"betId"`
	Status  models.BetStatus `json:"status,omitempty"`
	Payout  int64            `json:"payout"`
	Skipped bool             `json:"skipped"`
}

// Failure codes reported for bets a fan-out could not settle. The
// underlying error is only logged.
const (
	FailureBettorNotFound = "BETTOR_NOT_FOUND"
	FailureConflict       = "CONFLICT"
	FailureInternal       = "INTERNAL_ERROR"
)

// Failure is a bet that could not be settled during a fan-out.
type Failure struct {
	BetID uuid.UUID `json:"betId"`
	Code  string    `json:"code"`
}

func failureCode(err error) string {
	switch {
	case errors.Is(err, models.ErrBettorNotFound):
		return FailureBettorNotFound
	case errors.Is(err, models.ErrTxConflict):
		return FailureConflict
	default:
		return FailureInternal
	}
}

// Report summarizes a fan-out. Skipped bets were already archived.
type Report struct {
	Settled int       `json:"settled"`
	Skipped int       `json:"skipped"`
	Failed  []Failure `json:"failed"`
}

// HasFailures reports whether any bet was left unsettled.
func (r *Report) HasFailures() bool {
	return len(r.Failed) > 0
}
