package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultTokenGrant is the balance every new account starts with.
const DefaultTokenGrant int64 = 100000

var hundred = decimal.NewFromInt(100)

// User is a bettor account together with its token ledger and betting statistics.
type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string          `gorm:"type:varchar(150);not null" json:"name"`
	Email        string          `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	Phone        string          `gorm:"type:varchar(20)" json:"phone"`
	PasswordHash string          `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role            `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Tokens       int64           `gorm:"not null;default:100000;check:tokens >= 0" json:"tokens"`
	WonBets      int             `gorm:"not null;default:0" json:"wonBets"`
	LostBets     int             `gorm:"not null;default:0" json:"lostBets"`
	Streak       int             `gorm:"not null;default:0" json:"streak"`
	SuccessRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"successRate"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for User model
func (*User) TableName() string {
	return "users"
}

// BeforeCreate sets up the model before creation
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// CanAfford reports whether the balance covers amount.
func (u *User) CanAfford(amount int64) bool {
	return amount >= 0 && u.Tokens >= amount
}

// Debit removes amount from the balance.
func (u *User) Debit(amount int64) error {
	if amount < 0 {
		return ErrInvalidBetAmount
	}
	if !u.CanAfford(amount) {
		return ErrInsufficientTokens
	}
	u.Tokens -= amount
	return nil
}

// Credit adds amount to the balance.
func (u *User) Credit(amount int64) {
	if amount > 0 {
		u.Tokens += amount
	}
}

// ApplySettlement records the outcome of one settled bet: the payout is
// credited, the win/loss counters and streak move, and the success rate is
// recomputed from the counters.
func (u *User) ApplySettlement(won bool, payout int64) {
	if won {
		u.Credit(payout)
		u.WonBets++
		u.Streak++
	} else {
		u.LostBets++
		u.Streak = 0
	}
	u.SuccessRate = SuccessRate(u.WonBets, u.LostBets)
}

// SuccessRate returns won/(won+lost)*100 rounded to two places, or zero
// when nothing has settled yet.
func SuccessRate(won, lost int) decimal.Decimal {
	settled := won + lost
	if settled <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(won)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(settled))).
		Round(2)
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate performs validation on the user model
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	if !IsEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	if u.Tokens < 0 {
		return ErrNegativeTokens
	}
	return nil
}

// MaskSensitiveData masks sensitive information for logging
func (u *User) MaskSensitiveData() *User {
	masked := *u
	masked.PasswordHash = "***"
	if len(masked.Email) > 4 {
		masked.Email = "***" + masked.Email[len(masked.Email)-4:]
	}
	if len(masked.Phone) > 4 {
		masked.Phone = "***" + masked.Phone[len(masked.Phone)-4:]
	}
	return &masked
}

func IsEmail(identity string) bool {
	return identity != "" && strings.Contains(identity, "@") && strings.Contains(identity, ".")
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
