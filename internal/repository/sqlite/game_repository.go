package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/unrealities/talkie-trivia-sub000/internal/db"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/repository"
)

type gameRepository struct {
	db *db.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *db.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) FetchOrCreateSession(ctx context.Context, playerID, dateKey string, item models.TriviaItem, guessesMax int, difficultyLevel string) (*models.PlayerGame, error) {
	existing, err := r.db.GetPlayerGame(ctx, playerID, dateKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	game := &models.PlayerGame{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		DateKey:    dateKey,
		Item:       item,
		GuessesMax: guessesMax,
		Difficulty: difficultyLevel,
		Guesses:    []models.Guess{},
		HintsUsed:  make(map[models.HintCategory]bool),
		Status:     models.StatusPlaying,
		StartedAt:  time.Now(),
	}
	if err := r.db.InsertPlayerGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (r *gameRepository) FetchOrCreateStats(ctx context.Context, playerID string, startingHintPoints int) (*models.PlayerStats, error) {
	existing, err := r.db.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	stats := &models.PlayerStats{
		PlayerID:   playerID,
		HintPoints: startingHintPoints,
	}
	if err := r.db.InsertPlayerStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *gameRepository) SaveProgress(ctx context.Context, game *models.PlayerGame, stats *models.PlayerStats, entry *models.GameHistoryEntry) error {
	return r.db.SaveProgress(ctx, game, stats, entry)
}

func (r *gameRepository) FetchHistory(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error) {
	return r.db.ListHistory(ctx, filter)
}
