package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetDifficulty(ctx context.Context, playerID string) (string, error) {
	args := m.Called(ctx, playerID)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) SetDifficulty(ctx context.Context, playerID, level string) error {
	args := m.Called(ctx, playerID, level)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetSeenTip(ctx context.Context, playerID, tip string) (bool, error) {
	args := m.Called(ctx, playerID, tip)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsRepository) SetSeenTip(ctx context.Context, playerID, tip string) error {
	args := m.Called(ctx, playerID, tip)
	return args.Error(0)
}
