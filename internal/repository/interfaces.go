package repository

import (
	"context"

	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// GameRepository is the persistence collaborator for sessions, stats and
// history.
type GameRepository interface {
	// FetchOrCreateSession returns the existing session for the player and
	// day, or creates a fresh one around the given item and settings.
	FetchOrCreateSession(ctx context.Context, playerID, dateKey string, item models.TriviaItem, guessesMax int, difficultyLevel string) (*models.PlayerGame, error)

	// FetchOrCreateStats returns the player's aggregate stats, creating the
	// row with the starting hint-point balance when absent.
	FetchOrCreateStats(ctx context.Context, playerID string, startingHintPoints int) (*models.PlayerStats, error)

	// SaveProgress atomically writes the session, the stats and the
	// optional history entry. Either all three commit or none do.
	SaveProgress(ctx context.Context, game *models.PlayerGame, stats *models.PlayerStats, entry *models.GameHistoryEntry) error

	// FetchHistory returns finished-game entries, newest first.
	FetchHistory(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error)
}

// CatalogRepository provides the trivia item catalog.
type CatalogRepository interface {
	ItemByID(ctx context.Context, id int64) (*models.TriviaItem, error)
	ItemCount(ctx context.Context) (int, error)
	ItemByIndex(ctx context.Context, index int) (*models.TriviaItem, error)
	SearchItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error)
}

// SettingsRepository is the local key-value settings store.
type SettingsRepository interface {
	GetDifficulty(ctx context.Context, playerID string) (string, error)
	SetDifficulty(ctx context.Context, playerID, level string) error
	GetSeenTip(ctx context.Context, playerID, tip string) (bool, error)
	SetSeenTip(ctx context.Context, playerID, tip string) error
}
