package database

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// MockTransactor runs fn directly with a nil transaction handle. Tests pair
// it with repository mocks whose WithTx ignores the handle.
type MockTransactor struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

func (m *MockTransactor) InTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	m.mu.Lock()
	m.Calls++
	err := m.Err
	m.mu.Unlock()

	if err != nil {
		return err
	}
	return fn(nil)
}
