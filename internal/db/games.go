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

const playerGameColumns = `g.id, g.player_id, g.date_key, g.item_id, g.guesses_max, g.difficulty,
g.guesses, g.correct_answer, g.gave_up, g.hints_used, g.stats_processed, g.status, g.started_at, g.ended_at,
i.title, i.description, i.poster_path, i.hints`

// GetPlayerGame fetches the session for a player and day, joined with its
// trivia item. Returns nil when no session exists yet.
func (db *DB) GetPlayerGame(ctx context.Context, playerID, dateKey string) (*models.PlayerGame, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching player game: player=%s date=%s", playerID, dateKey)

	row := db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT %s
FROM player_games g
JOIN trivia_items i ON i.id = g.item_id
WHERE g.player_id = ? AND g.date_key = ?
`, playerGameColumns), playerID, dateKey)

	game, err := scanPlayerGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get player game: %v", err)
		return nil, err
	}
	return game, nil
}

// InsertPlayerGame creates a fresh session row.
func (db *DB) InsertPlayerGame(ctx context.Context, game *models.PlayerGame) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting player game: id=%s player=%s date=%s", game.ID, game.PlayerID, game.DateKey)

	guesses, hintsUsed, err := marshalGameState(game)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO player_games (id, player_id, date_key, item_id, guesses_max, difficulty, guesses, correct_answer, gave_up, hints_used, stats_processed, status, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, game.ID, game.PlayerID, game.DateKey, game.Item.ID, game.GuessesMax, game.Difficulty,
		guesses, game.CorrectAnswer, game.GaveUp, hintsUsed, game.StatsProcessed, string(game.Status), game.StartedAt, game.EndedAt)
	if err != nil {
		log.Error("failed to insert player game: %v", err)
	}
	return err
}

func updatePlayerGameTx(ctx context.Context, t *sql.Tx, game *models.PlayerGame) error {
	guesses, hintsUsed, err := marshalGameState(game)
	if err != nil {
		return err
	}
	_, err = t.ExecContext(ctx, `
UPDATE player_games
SET guesses_max = ?, difficulty = ?, guesses = ?, correct_answer = ?, gave_up = ?, hints_used = ?, stats_processed = ?, status = ?, ended_at = ?
WHERE id = ?
`, game.GuessesMax, game.Difficulty, guesses, game.CorrectAnswer, game.GaveUp, hintsUsed,
		game.StatsProcessed, string(game.Status), game.EndedAt, game.ID)
	return err
}

// SaveProgress writes the session, the stats and (when the session just
// finished) the history entry in a single transaction. Either all three
// commit or none do.
func (db *DB) SaveProgress(ctx context.Context, game *models.PlayerGame, stats *models.PlayerStats, entry *models.GameHistoryEntry) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("saving progress: game=%s with_history=%t", game.ID, entry != nil)

	return tx(ctx, db, func(t *sql.Tx) error {
		if err := updatePlayerGameTx(ctx, t, game); err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		if err := upsertPlayerStatsTx(ctx, t, stats); err != nil {
			return fmt.Errorf("update stats: %w", err)
		}
		if entry != nil {
			if err := insertHistoryEntryTx(ctx, t, entry); err != nil {
				return fmt.Errorf("insert history: %w", err)
			}
		}
		return nil
	})
}

func marshalGameState(game *models.PlayerGame) (string, string, error) {
	guesses, err := json.Marshal(game.Guesses)
	if err != nil {
		return "", "", err
	}
	hintsUsed, err := json.Marshal(game.HintsUsed)
	if err != nil {
		return "", "", err
	}
	return string(guesses), string(hintsUsed), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayerGame(row rowScanner) (*models.PlayerGame, error) {
	var (
		g                 models.PlayerGame
		guessesJSON       string
		hintsUsedJSON     string
		itemHintsJSON     string
		endedAt           sql.NullTime
		status            string
	)
	err := row.Scan(&g.ID, &g.PlayerID, &g.DateKey, &g.Item.ID, &g.GuessesMax, &g.Difficulty,
		&guessesJSON, &g.CorrectAnswer, &g.GaveUp, &hintsUsedJSON, &g.StatsProcessed, &status, &g.StartedAt, &endedAt,
		&g.Item.Title, &g.Item.Description, &g.Item.PosterPath, &itemHintsJSON)
	if err != nil {
		return nil, err
	}
	g.Status = models.GameStatus(status)
	if endedAt.Valid {
		g.EndedAt = &endedAt.Time
	}
	if err := json.Unmarshal([]byte(guessesJSON), &g.Guesses); err != nil {
		return nil, fmt.Errorf("decode guesses: %w", err)
	}
	if err := json.Unmarshal([]byte(hintsUsedJSON), &g.HintsUsed); err != nil {
		return nil, fmt.Errorf("decode hints_used: %w", err)
	}
	if g.HintsUsed == nil {
		g.HintsUsed = make(map[models.HintCategory]bool)
	}
	if err := json.Unmarshal([]byte(itemHintsJSON), &g.Item.Hints); err != nil {
		return nil, fmt.Errorf("decode item hints: %w", err)
	}
	return &g, nil
}
