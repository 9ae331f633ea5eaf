package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// GetPlayerStats fetches the aggregate stats row. Returns nil when the
// player has no stats yet.
func (db *DB) GetPlayerStats(ctx context.Context, playerID string) (*models.PlayerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching player stats: player=%s", playerID)

	var (
		s        models.PlayerStats
		winsJSON string
	)
	err := db.QueryRowContext(ctx, `
SELECT player_id, games_played, current_streak, max_streak, wins, all_time_score, hint_points, hints_used_total
FROM player_stats
WHERE player_id = ?
`, playerID).Scan(&s.PlayerID, &s.GamesPlayed, &s.CurrentStreak, &s.MaxStreak, &winsJSON, &s.AllTimeScore, &s.HintPoints, &s.HintsUsedTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get player stats: %v", err)
		return nil, err
	}

	var wins []int
	if err := json.Unmarshal([]byte(winsJSON), &wins); err != nil {
		return nil, fmt.Errorf("decode wins histogram: %w", err)
	}
	for i, n := range wins {
		if i >= models.WinHistogramSize {
			break
		}
		s.Wins[i] = n
	}
	return &s, nil
}

// InsertPlayerStats creates the initial stats row for a player.
func (db *DB) InsertPlayerStats(ctx context.Context, stats *models.PlayerStats) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting player stats: player=%s", stats.PlayerID)

	wins, err := json.Marshal(stats.Wins[:])
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO player_stats (player_id, games_played, current_streak, max_streak, wins, all_time_score, hint_points, hints_used_total)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, stats.PlayerID, stats.GamesPlayed, stats.CurrentStreak, stats.MaxStreak, string(wins), stats.AllTimeScore, stats.HintPoints, stats.HintsUsedTotal)
	if err != nil {
		log.Error("failed to insert player stats: %v", err)
	}
	return err
}

func upsertPlayerStatsTx(ctx context.Context, t *sql.Tx, stats *models.PlayerStats) error {
	wins, err := json.Marshal(stats.Wins[:])
	if err != nil {
		return err
	}
	_, err = t.ExecContext(ctx, `
INSERT INTO player_stats (player_id, games_played, current_streak, max_streak, wins, all_time_score, hint_points, hints_used_total)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id) DO UPDATE SET
    games_played = excluded.games_played,
    current_streak = excluded.current_streak,
    max_streak = excluded.max_streak,
    wins = excluded.wins,
    all_time_score = excluded.all_time_score,
    hint_points = excluded.hint_points,
    hints_used_total = excluded.hints_used_total
`, stats.PlayerID, stats.GamesPlayed, stats.CurrentStreak, stats.MaxStreak, string(wins), stats.AllTimeScore, stats.HintPoints, stats.HintsUsedTotal)
	return err
}
