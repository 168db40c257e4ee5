package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/placement/internal/formatter"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/validator"
	"github.com/joefazee/placement/models"
	"github.com/shopspring/decimal"
)

const defaultPhoneRegion = "IN"

// RegisterUserRequest represents the request to create a user.
type RegisterUserRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	CountryCode string `json:"countryCode" binding:"omitempty,len=2"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// Validate normalizes the request and checks what binding tags cannot. The
// phone number is rewritten to E.164 when it parses.
func (r *RegisterUserRequest) Validate(v *validator.Validator, s sanitizer.HTMLStripperer) bool {
	r.Name = formatter.Name(s.StripHTML(r.Name))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	v.Check(validator.NotBlank(r.Name), "name", "name is required")
	v.Check(validator.MinRunes(r.Name, 2), "name", "name must be at least 2 characters")
	v.Check(validator.IsEmail(r.Email), "email", "email is invalid")

	if strings.TrimSpace(r.Phone) != "" {
		region := r.CountryCode
		if region == "" {
			region = defaultPhoneRegion
		}
		phone, err := formatter.FormatPhone(r.Phone, region)
		if err != nil {
			v.AddError("phone", "phone number is invalid")
		} else {
			r.Phone = phone
		}
	}

	return v.Valid()
}

// LoginRequest represents the request to log in. Identity is an email
// address or a phone number.
type LoginRequest struct {
	Identity string `json:"identity" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response represents the response for user data.
type Response struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	Role        models.Role     `json:"role"`
	Tokens      int64           `json:"tokens"`
	WonBets     int             `json:"wonBets"`
	LostBets    int             `json:"lostBets"`
	Streak      int             `json:"streak"`
	SuccessRate decimal.Decimal `json:"successRate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        Response  `json:"user"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank        int             `json:"rank"`
	UserID      uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	Tokens      int64           `json:"tokens"`
	WonBets     int             `json:"wonBets"`
	LostBets    int             `json:"lostBets"`
	Streak      int             `json:"streak"`
	SuccessRate decimal.Decimal `json:"successRate"`
}

func ToResponse(u *models.User) Response {
	return Response{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		Tokens:      u.Tokens,
		WonBets:     u.WonBets,
		LostBets:    u.LostBets,
		Streak:      u.Streak,
		SuccessRate: u.SuccessRate,
		CreatedAt:   u.CreatedAt,
	}
}

func toLeaderboard(users []models.User) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(users))
	for i := range users {
		u := &users[i]
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			UserID:      u.ID,
			Name:        u.Name,
			Tokens:      u.Tokens,
			WonBets:     u.WonBets,
			LostBets:    u.LostBets,
			Streak:      u.Streak,
			SuccessRate: u.SuccessRate,
		}
	}
	return entries
}
