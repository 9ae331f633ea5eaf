package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// MockCatalogRepository is a mock implementation of repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ItemByID(ctx context.Context, id int64) (*models.TriviaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TriviaItem), args.Error(1)
}

func (m *MockCatalogRepository) ItemCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogRepository) ItemByIndex(ctx context.Context, index int) (*models.TriviaItem, error) {
	args := m.Called(ctx, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TriviaItem), args.Error(1)
}

func (m *MockCatalogRepository) SearchItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TriviaItem), args.Error(1)
}
