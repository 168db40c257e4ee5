package events

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPublisher is a testify mock for Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) BetsPlaced(ctx context.Context, events []BetPlaced) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockPublisher) BetsSettled(ctx context.Context, events []BetSettled) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockPublisher) CompanyResolved(ctx context.Context, event CompanyResolved) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}
