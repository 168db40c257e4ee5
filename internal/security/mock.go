package security

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ Maker = (*MockMaker)(nil)

// MockMaker stands in for the PASETO maker in login and auth middleware
// tests.
type MockMaker struct {
	mock.Mock
}

// ExpectToken makes VerifyToken accept token as a session of userID
// holding role, valid for another hour.
func (m *MockMaker) ExpectToken(token string, userID uuid.UUID, role string) *mock.Call {
	now := time.Now()
	return m.On("VerifyToken", token).Return(&Payload{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiredAt: now.Add(time.Hour),
	}, nil)
}

func (m *MockMaker) CreateToken(userID uuid.UUID, role string, duration time.Duration) (string, *Payload, error) {
	args := m.Called(userID, role, duration)
	payload, _ := args.Get(1).(*Payload)
	return args.String(0), payload, args.Error(2)
}

func (m *MockMaker) VerifyToken(token string) (*Payload, error) {
	args := m.Called(token)
	payload, _ := args.Get(0).(*Payload)
	return payload, args.Error(1)
}
