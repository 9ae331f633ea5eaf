package sqlite

import (
	"context"

	"github.com/unrealities/talkie-trivia-sub000/internal/db"
	"github.com/unrealities/talkie-trivia-sub000/internal/repository"
)

const (
	settingDifficulty = "difficulty"
	settingTipPrefix  = "seen_tip:"
)

type settingsRepository struct {
	db *db.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *db.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetDifficulty(ctx context.Context, playerID string) (string, error) {
	return r.db.GetSetting(ctx, playerID, settingDifficulty)
}

func (r *settingsRepository) SetDifficulty(ctx context.Context, playerID, level string) error {
	return r.db.SetSetting(ctx, playerID, settingDifficulty, level)
}

func (r *settingsRepository) GetSeenTip(ctx context.Context, playerID, tip string) (bool, error) {
	v, err := r.db.GetSetting(ctx, playerID, settingTipPrefix+tip)
	return v == "true", err
}

func (r *settingsRepository) SetSeenTip(ctx context.Context, playerID, tip string) error {
	return r.db.SetSetting(ctx, playerID, settingTipPrefix+tip, "true")
}
