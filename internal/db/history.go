package db

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

func insertHistoryEntryTx(ctx context.Context, t *sql.Tx, e *models.GameHistoryEntry) error {
	_, err := t.ExecContext(ctx, `
INSERT INTO game_history (id, player_id, date_key, item_id, item_title, poster_path, correct, gave_up, guess_count, guesses_max, difficulty, score, game_mode, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.PlayerID, e.DateKey, e.ItemID, e.ItemTitle, e.PosterPath, e.Correct, e.GaveUp,
		e.GuessCount, e.GuessesMax, e.Difficulty, e.Score, e.GameMode, e.CreatedAt)
	return err
}

// ListHistory returns history entries newest-first, narrowed by the filter.
func (db *DB) ListHistory(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing history: player=%s limit=%d", filter.PlayerID, filter.Limit)

	q := sq.Select("id", "player_id", "date_key", "item_id", "item_title", "poster_path",
		"correct", "gave_up", "guess_count", "guesses_max", "difficulty", "score", "game_mode", "created_at").
		From("game_history").
		Where(sq.Eq{"player_id": filter.PlayerID}).
		OrderBy("created_at DESC")

	if filter.Difficulty != "" {
		q = q.Where(sq.Eq{"difficulty": filter.Difficulty})
	}
	if filter.OnlyWins {
		q = q.Where(sq.Eq{"correct": true})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.GameHistoryEntry
	for rows.Next() {
		var e models.GameHistoryEntry
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.DateKey, &e.ItemID, &e.ItemTitle, &e.PosterPath,
			&e.Correct, &e.GaveUp, &e.GuessCount, &e.GuessesMax, &e.Difficulty, &e.Score, &e.GameMode, &e.CreatedAt); err != nil {
			log.Error("failed to scan history entry: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d history entries", len(entries))
	return entries, rows.Err()
}
