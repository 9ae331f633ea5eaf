package models

import "time"

// GameHistoryEntry is an append-only snapshot written once per finished
// session. Entries are never updated.
type GameHistoryEntry struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	DateKey    string    `json:"date_key"`
	ItemID     int64     `json:"item_id"`
	ItemTitle  string    `json:"item_title"`
	PosterPath string    `json:"poster_path"`
	Correct    bool      `json:"correct"`
	GaveUp     bool      `json:"gave_up"`
	GuessCount int       `json:"guess_count"`
	GuessesMax int       `json:"guesses_max"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	GameMode   string    `json:"game_mode"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryFilter narrows and pages history queries.
type HistoryFilter struct {
	PlayerID   string
	Difficulty string
	OnlyWins   bool
	Limit      int
	Offset     int
}
