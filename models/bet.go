package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BetType is the side a wager is placed on.
type BetType string

const (
	BetTypeFor     BetType = "for"
	BetTypeAgainst BetType = "against"
)

// IsValid reports whether t is a known bet type.
func (t BetType) IsValid() bool {
	return t == BetTypeFor || t == BetTypeAgainst
}

// MaxBetAmount caps a single wager. It is ten times the sign-up grant.
const MaxBetAmount int64 = 1_000_000

// BetStatus represents the status of a bet
type BetStatus string

const (
	BetStatusActive    BetStatus = "active"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusCancelled BetStatus = "cancelled"
)

// Bet is an unsettled wager on one candidate of a company.
type Bet struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index:idx_bets_user" json:"userId"`
	CompanyRef           uuid.UUID       `gorm:"type:uuid;not null;index:idx_bets_company_target" json:"companyRef"`
	CompanyID            int64           `gorm:"not null" json:"companyId"`
	TargetUserID         int             `gorm:"not null;index:idx_bets_company_target" json:"targetUserId"`
	TargetUserName       string          `gorm:"type:varchar(150)" json:"targetUserName"`
	TargetUserEnrollment string          `gorm:"type:varchar(50)" json:"targetUserEnrollment"`
	BetType              BetType         `gorm:"type:varchar(10);not null" json:"betType"`
	Amount               int64           `gorm:"not null;check:amount BETWEEN 1 AND 1000000" json:"amount"`
	Stake                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"stake"`
	Status               BetStatus       `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName specifies the table name for Bet model
func (*Bet) TableName() string {
	return "bets"
}

// BeforeCreate sets up the model before creation
func (b *Bet) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BetStatusActive
	}
	return nil
}

// IsActive checks if the bet is still active
func (b *Bet) IsActive() bool {
	return b.Status == BetStatusActive
}

// Wins reports whether the bet wins given its candidate's result. A for bet
// wins only on won; an against bet wins only on lost.
func (b *Bet) Wins(result CandidateResult) bool {
	switch b.BetType {
	case BetTypeFor:
		return result == ResultWon
	case BetTypeAgainst:
		return result == ResultLost
	}
	return false
}

// Payout is floor(amount * stake) using the stake locked at placement.
func (b *Bet) Payout() int64 {
	return decimal.NewFromInt(b.Amount).Mul(b.Stake).Floor().IntPart()
}

// Settle resolves the bet against result and returns the archive record
// together with the tokens to credit.
func (b *Bet) Settle(result CandidateResult, at time.Time) (*ExpiredBet, error) {
	if !b.IsActive() {
		return nil, ErrBetNotActive
	}
	if !result.Settles() {
		return nil, ErrCandidateAwaited
	}

	status := BetStatusLost
	var payout int64
	if b.Wins(result) {
		status = BetStatusWon
		payout = b.Payout()
	}
	b.Status = status

	return &ExpiredBet{
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
		Status:               status,
		Payout:               payout,
		CreatedAt:            b.CreatedAt,
		SettledAt:            at,
	}, nil
}

// Validate performs validation on the bet model
func (b *Bet) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if b.CompanyRef == uuid.Nil {
		return ErrInvalidCompanyID
	}
	if !b.BetType.IsValid() {
		return ErrInvalidBetType
	}
	if b.Amount < 1 || b.Amount > MaxBetAmount {
		return ErrInvalidBetAmount
	}
	if b.Stake.LessThan(decimal.NewFromInt(1)) {
		return ErrInvalidStake
	}
	return nil
}

// ExpiredBet is the permanent record of a settled bet. It keeps the id of
// the bet it was archived from, so a bet can be archived only once.
type ExpiredBet struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index:idx_expired_bets_user" json:"userId"`
	CompanyRef           uuid.UUID       `gorm:"type:uuid;not null;index" json:"companyRef"`
	CompanyID            int64           `gorm:"not null" json:"companyId"`
	TargetUserID         int             `gorm:"not null" json:"targetUserId"`
	TargetUserName       string          `gorm:"type:varchar(150)" json:"targetUserName"`
	TargetUserEnrollment string          `gorm:"type:varchar(50)" json:"targetUserEnrollment"`
	BetType              BetType         `gorm:"type:varchar(10);not null" json:"betType"`
	Amount               int64           `gorm:"not null" json:"amount"`
	Stake                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"stake"`
	Status               BetStatus       `gorm:"type:varchar(20);not null" json:"status"`
	Payout               int64           `gorm:"not null;default:0" json:"payout"`
	CreatedAt            time.Time       `gorm:"not null" json:"createdAt"`
	SettledAt            time.Time       `gorm:"not null" json:"settledAt"`
}

// TableName specifies the table name for ExpiredBet model
func (*ExpiredBet) TableName() string {
	return "expired_bets"
}

// IsWin reports whether the archived bet paid out.
func (e *ExpiredBet) IsWin() bool {
	return e.Status == BetStatusWon
}
