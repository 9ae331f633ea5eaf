package models

import "time"

// HintCategory identifies one attribute of a trivia item that can be
// revealed as a hint during a session.
type HintCategory string

const (
	HintDecade   HintCategory = "decade"
	HintDirector HintCategory = "director"
	HintGenre    HintCategory = "genre"
	HintActor    HintCategory = "actor"
)

// HintCategories lists every category in display order.
var HintCategories = []HintCategory{HintDecade, HintDirector, HintGenre, HintActor}

// GameStatus tracks the one-directional session lifecycle.
type GameStatus string

const (
	StatusPlaying   GameStatus = "playing"
	StatusRevealing GameStatus = "revealing"
	StatusGameOver  GameStatus = "gameOver"
)

// TriviaItem is the day's answer. Immutable for the duration of a session.
type TriviaItem struct {
	ID          int64                   `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	PosterPath  string                  `json:"poster_path"`
	Hints       map[HintCategory]string `json:"hints"`
}

// Guess is one attempt at the day's item. HintReveals records the categories
// an incorrect guess exposed, in the order they were discovered.
type Guess struct {
	ItemID      int64          `json:"item_id"`
	ItemTitle   string         `json:"item_title"`
	Correct     bool           `json:"correct"`
	HintReveals []HintCategory `json:"hint_reveals,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// PlayerGame is one player's session against one day's trivia item.
type PlayerGame struct {
	ID             string                `json:"id"`
	PlayerID       string                `json:"player_id"`
	DateKey        string                `json:"date_key"`
	Item           TriviaItem            `json:"item"`
	GuessesMax     int                   `json:"guesses_max"`
	Difficulty     string                `json:"difficulty"`
	Guesses        []Guess               `json:"guesses"`
	CorrectAnswer  bool                  `json:"correct_answer"`
	GaveUp         bool                  `json:"gave_up"`
	HintsUsed      map[HintCategory]bool `json:"hints_used"`
	StatsProcessed bool                  `json:"stats_processed"`
	Status         GameStatus            `json:"status"`
	StartedAt      time.Time             `json:"started_at"`
	EndedAt        *time.Time            `json:"ended_at"`
}

// IsTerminal reports whether the session can accept no further guesses.
func (g *PlayerGame) IsTerminal() bool {
	return g.CorrectAnswer || g.GaveUp || len(g.Guesses) >= g.GuessesMax
}

// LastGuessResult is the transient outcome of the most recent guess,
// published for the presentation layer and cleared on read.
type LastGuessResult struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// HintStatus is the UI-facing availability of one hint category.
type HintStatus string

const (
	HintAvailable HintStatus = "available"
	HintUsed      HintStatus = "used"
	HintDisabled  HintStatus = "disabled"
)

// HintState is the resolved affordance for every category plus the
// strategy-level label and manual-toggle flag.
type HintState struct {
	Statuses  map[HintCategory]HintStatus `json:"statuses"`
	Label     string                      `json:"label"`
	CanToggle bool                        `json:"can_toggle"`
}
