package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveBet(betType BetType, amount int64, stake string) *Bet {
	return &Bet{
		ID:                   uuid.New(),
		UserID:               uuid.New(),
		CompanyRef:           uuid.New(),
		CompanyID:            7,
		TargetUserID:         2,
		TargetUserName:       "Asha Rao",
		TargetUserEnrollment: "ENR-002",
		BetType:              betType,
		Amount:               amount,
		Stake:                decimal.RequireFromString(stake),
		Status:               BetStatusActive,
		CreatedAt:            time.Now().Add(-time.Hour),
	}
}

func TestBet(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		assert.Equal(t, "bets", (&Bet{}).TableName())
		assert.Equal(t, "expired_bets", (&ExpiredBet{}).TableName())
	})

	t.Run("BeforeCreate", func(t *testing.T) {
		b := Bet{}
		assert.NoError(t, b.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, b.ID)
		assert.Equal(t, BetStatusActive, b.Status)

		existingID := uuid.New()
		b2 := Bet{ID: existingID, Status: BetStatusWon}
		assert.NoError(t, b2.BeforeCreate(nil))
		assert.Equal(t, existingID, b2.ID)
		assert.Equal(t, BetStatusWon, b2.Status)
	})

	t.Run("Wins", func(t *testing.T) {
		tests := []struct {
			betType BetType
			result  CandidateResult
			want    bool
		}{
			{BetTypeFor, ResultWon, true},
			{BetTypeFor, ResultLost, false},
			{BetTypeFor, ResultAwaited, false},
			{BetTypeAgainst, ResultLost, true},
			{BetTypeAgainst, ResultWon, false},
			{BetTypeAgainst, ResultAwaited, false},
			{BetTypeFor, ResultForfeit, false},
			{BetTypeAgainst, ResultForfeit, false},
		}
		for _, tt := range tests {
			b := Bet{BetType: tt.betType}
			assert.Equal(t, tt.want, b.Wins(tt.result), "%s on %s", tt.betType, tt.result)
		}
	})

	t.Run("Payout floors amount times stake", func(t *testing.T) {
		assert.Equal(t, int64(459), newActiveBet(BetTypeFor, 300, "1.53").Payout())
		assert.Equal(t, int64(400), newActiveBet(BetTypeAgainst, 200, "2.00").Payout())
		assert.Equal(t, int64(1), newActiveBet(BetTypeFor, 1, "1.99").Payout())
		assert.Equal(t, int64(261), newActiveBet(BetTypeAgainst, 100, "2.61").Payout())
	})

	t.Run("Settle winning for bet", func(t *testing.T) {
		b := newActiveBet(BetTypeFor, 300, "1.53")
		now := time.Now()

		archived, err := b.Settle(ResultWon, now)
		require.NoError(t, err)

		assert.Equal(t, b.ID, archived.ID)
		assert.Equal(t, BetStatusWon, archived.Status)
		assert.Equal(t, int64(459), archived.Payout)
		assert.True(t, archived.IsWin())
		assert.Equal(t, b.CreatedAt, archived.CreatedAt)
		assert.Equal(t, now, archived.SettledAt)
		assert.True(t, archived.Stake.Equal(decimal.RequireFromString("1.53")))
		assert.Equal(t, BetStatusWon, b.Status)
	})

	t.Run("Settle losing against bet", func(t *testing.T) {
		b := newActiveBet(BetTypeAgainst, 200, "2.0")

		archived, err := b.Settle(ResultWon, time.Now())
		require.NoError(t, err)

		assert.Equal(t, BetStatusLost, archived.Status)
		assert.Equal(t, int64(0), archived.Payout)
		assert.False(t, archived.IsWin())
	})

	t.Run("Settle forfeit loses both sides", func(t *testing.T) {
		for _, side := range []BetType{BetTypeFor, BetTypeAgainst} {
			b := newActiveBet(side, 100, "1.50")
			archived, err := b.Settle(ResultForfeit, time.Now())
			require.NoError(t, err)
			assert.Equal(t, BetStatusLost, archived.Status, side)
			assert.Equal(t, int64(0), archived.Payout, side)
		}
	})

	t.Run("Settle twice is rejected", func(t *testing.T) {
		b := newActiveBet(BetTypeFor, 100, "1.50")
		_, err := b.Settle(ResultLost, time.Now())
		require.NoError(t, err)

		_, err = b.Settle(ResultLost, time.Now())
		assert.ErrorIs(t, err, ErrBetNotActive)
	})

	t.Run("Settle requires a terminal result", func(t *testing.T) {
		b := newActiveBet(BetTypeFor, 100, "1.50")
		_, err := b.Settle(ResultAwaited, time.Now())
		assert.ErrorIs(t, err, ErrCandidateAwaited)
		assert.True(t, b.IsActive())
	})

	t.Run("Validate", func(t *testing.T) {
		valid := newActiveBet(BetTypeFor, 10, "1.00")
		assert.NoError(t, valid.Validate())

		tests := []struct {
			name   string
			mutate func(b *Bet)
			err    error
		}{
			{"missing user", func(b *Bet) { b.UserID = uuid.Nil }, ErrInvalidUserID},
			{"missing company", func(b *Bet) { b.CompanyRef = uuid.Nil }, ErrInvalidCompanyID},
			{"bad type", func(b *Bet) { b.BetType = "maybe" }, ErrInvalidBetType},
			{"zero amount", func(b *Bet) { b.Amount = 0 }, ErrInvalidBetAmount},
			{"amount above cap", func(b *Bet) { b.Amount = MaxBetAmount + 1 }, ErrInvalidBetAmount},
			{"stake below one", func(b *Bet) { b.Stake = decimal.RequireFromString("0.99") }, ErrInvalidStake},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := newActiveBet(BetTypeFor, 10, "1.00")
				tt.mutate(b)
				assert.ErrorIs(t, b.Validate(), tt.err)
			})
		}
	})
}
