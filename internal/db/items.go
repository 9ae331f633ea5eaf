package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// GetTriviaItem fetches one catalog item by id. Returns nil when absent.
func (db *DB) GetTriviaItem(ctx context.Context, id int64) (*models.TriviaItem, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching trivia item: id=%d", id)

	row := db.QueryRowContext(ctx, `
SELECT id, title, description, poster_path, hints
FROM trivia_items
WHERE id = ?
`, id)
	item, err := scanTriviaItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get trivia item: %v", err)
		return nil, err
	}
	return item, nil
}

// CountTriviaItems returns the catalog size.
func (db *DB) CountTriviaItems(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trivia_items`).Scan(&n)
	return n, err
}

// GetTriviaItemByIndex fetches the n-th item in stable id order. Used by
// the deterministic daily selection.
func (db *DB) GetTriviaItemByIndex(ctx context.Context, index int) (*models.TriviaItem, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, title, description, poster_path, hints
FROM trivia_items
ORDER BY id
LIMIT 1 OFFSET ?
`, index)
	item, err := scanTriviaItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

// SearchTriviaItems returns items whose title matches the query, for the
// guess picker.
func (db *DB) SearchTriviaItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	q := sq.Select("id", "title", "description", "poster_path", "hints").
		From("trivia_items").
		OrderBy("title")
	if query != "" {
		q = q.Where(sq.Like{"title": "%" + query + "%"})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to search trivia items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.TriviaItem
	for rows.Next() {
		item, err := scanTriviaItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanTriviaItem(row rowScanner) (*models.TriviaItem, error) {
	var (
		item      models.TriviaItem
		hintsJSON string
	)
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.PosterPath, &hintsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(hintsJSON), &item.Hints); err != nil {
		return nil, fmt.Errorf("decode item hints: %w", err)
	}
	return &item, nil
}
