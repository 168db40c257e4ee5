package betting

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/app/companies"
	"github.com/joefazee/placement/models"
	"github.com/shopspring/decimal"
)

// Origin tells whether a bet is still open or already archived.
type Origin string

const (
	OriginActive   Origin = "active"
	OriginArchived Origin = "archived"
)

// WagerRequest is one entry of a bet batch.
type WagerRequest struct {
	TargetUserID         int            `json:"targetUserId" binding:"required,min=1"`
	TargetUserName       string         `json:"targetUserName" binding:"max=150"`
	TargetUserEnrollment string         `json:"targetUserEnrollment" binding:"max=50"`
	BetType              models.BetType `json:"betType" binding:"required,oneof=for against"`
	Amount               int64          `json:"amount" binding:"required,min=1,max=1000000"`
}

// PlaceBetsRequest places a batch of wagers on one company. CompanyID is
// the company uuid or its sequential number.
type PlaceBetsRequest struct {
	CompanyID string         `json:"companyId" binding:"required"`
	Bets      []WagerRequest `json:"bets" binding:"required,min=1,dive"`
}

// Total returns the sum of all wager amounts, or ErrInvalidBetAmount when
// an amount is out of range or the sum would overflow.
func (r *PlaceBetsRequest) Total() (int64, error) {
	return sumWagers(r.Bets)
}

func sumWagers(wagers []WagerRequest) (int64, error) {
	var total int64
	for i, w := range wagers {
		if w.Amount < 1 || w.Amount > models.MaxBetAmount || total > math.MaxInt64-w.Amount {
			return 0, fmt.Errorf("bets[%d]: %w", i, models.ErrInvalidBetAmount)
		}
		total += w.Amount
	}
	return total, nil
}

type BetResponse struct {
	ID                   uuid.UUID        `json:"id"`
	UserID               uuid.UUID        `json:"userId"`
	CompanyRef           uuid.UUID        `json:"companyRef"`
	CompanyID            int64            `json:"companyId"`
	TargetUserID         int              `json:"targetUserId"`
	TargetUserName       string           `json:"targetUserName"`
	TargetUserEnrollment string           `json:"targetUserEnrollment"`
	BetType              models.BetType   `json:"betType"`
	Amount               int64            `json:"amount"`
	Stake                decimal.Decimal  `json:"stake"`
	Status               models.BetStatus `json:"status"`
	Origin               Origin           `json:"origin"`
	Payout               *int64           `json:"payout,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	SettledAt            *time.Time       `json:"settledAt,omitempty"`
}

// PlaceBetsResponse is returned after a batch commits.
type PlaceBetsResponse struct {
	Bets           []BetResponse             `json:"bets"`
	TotalBetAmount int64                     `json:"totalBetAmount"`
	UpdatedCompany companies.CompanyResponse `json:"updatedCompany"`
}

func ToBetResponse(b *models.Bet) BetResponse {
	return BetResponse{
		ID:                   b.ID,
		UserID:               b.UserID,
		CompanyRef:           b.CompanyRef,
		CompanyID:            b.CompanyID,
		TargetUserID:         b.TargetUserID,
		TargetUserName:       b.TargetUserName,
		TargetUserEnrollment: b.TargetUserEnrollment,
		BetType:              b.BetType,
		Amount:               b.Amount,
		Stake:                b.Stake,
		Status:               b.Status,
		Origin:               OriginActive,
		CreatedAt:            b.CreatedAt,
	}
}

func ToArchivedResponse(e *models.ExpiredBet) BetResponse {
	payout := e.Payout
	settledAt := e.SettledAt
	return BetResponse{
		ID:                   e.ID,
		UserID:               e.UserID,
		CompanyRef:           e.CompanyRef,
		CompanyID:            e.CompanyID,
		TargetUserID:         e.TargetUserID,
		TargetUserName:       e.TargetUserName,
		TargetUserEnrollment: e.TargetUserEnrollment,
		BetType:              e.BetType,
		Amount:               e.Amount,
		Stake:                e.Stake,
		Status:               e.Status,
		Origin:               OriginArchived,
		Payout:               &payout,
		CreatedAt:            e.CreatedAt,
		SettledAt:            &settledAt,
	}
}
