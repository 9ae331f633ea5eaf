package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// MockGameRepository is a mock implementation of repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) FetchOrCreateSession(ctx context.Context, playerID, dateKey string, item models.TriviaItem, guessesMax int, difficultyLevel string) (*models.PlayerGame, error) {
	args := m.Called(ctx, playerID, dateKey, item, guessesMax, difficultyLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerGame), args.Error(1)
}

func (m *MockGameRepository) FetchOrCreateStats(ctx context.Context, playerID string, startingHintPoints int) (*models.PlayerStats, error) {
	args := m.Called(ctx, playerID, startingHintPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStats), args.Error(1)
}

func (m *MockGameRepository) SaveProgress(ctx context.Context, game *models.PlayerGame, stats *models.PlayerStats, entry *models.GameHistoryEntry) error {
	args := m.Called(ctx, game, stats, entry)
	return args.Error(0)
}

func (m *MockGameRepository) FetchHistory(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameHistoryEntry), args.Error(1)
}
