package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
)

// GetSetting returns the stored value for a player setting key, or "" when
// the key has never been set.
func (db *DB) GetSetting(ctx context.Context, playerID, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `
SELECT value FROM player_settings WHERE player_id = ? AND key = ?
`, playerID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSetting upserts a player setting.
func (db *DB) SetSetting(ctx context.Context, playerID, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("setting %s=%s for player=%s", key, value, playerID)

	_, err := db.ExecContext(ctx, `
INSERT INTO player_settings (player_id, key, value)
VALUES (?, ?, ?)
ON CONFLICT(player_id, key) DO UPDATE SET value = excluded.value
`, playerID, key, value)
	if err != nil {
		log.Error("failed to set setting %s: %v", key, err)
	}
	return err
}
