package session

import (
	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/hints"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Game       models.PlayerGame  `json:"game"`
	Stats      models.PlayerStats `json:"stats"`
	HintState  models.HintState   `json:"hint_state"`
	ActiveMode difficulty.Mode    `json:"active_mode"`
	Score      int                `json:"score"`
}

// Snapshot copies the current session state. The copy shares nothing
// mutable with the engine.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	game := *e.game
	game.Guesses = make([]models.Guess, len(e.game.Guesses))
	copy(game.Guesses, e.game.Guesses)
	game.HintsUsed = make(map[models.HintCategory]bool, len(e.game.HintsUsed))
	for k, v := range e.game.HintsUsed {
		game.HintsUsed[k] = v
	}

	return Snapshot{
		Game:       game,
		Stats:      *e.stats,
		HintState:  hints.ResolveHintStates(e.mode.Strategy, e.game.HintsUsed, e.stats.HintPoints, e.locked),
		ActiveMode: e.mode,
		Score:      e.finalScore,
	}
}

// ConsumeLastGuess returns the transient result of the most recent guess
// and clears it, so the presentation layer sees it exactly once.
func (e *Engine) ConsumeLastGuess() *models.LastGuessResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := e.lastGuess
	e.lastGuess = nil
	return result
}

// HintStates resolves the current per-category hint affordances.
func (e *Engine) HintStates() models.HintState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return hints.ResolveHintStates(e.mode.Strategy, e.game.HintsUsed, e.stats.HintPoints, e.locked)
}
