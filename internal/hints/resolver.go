package hints

import (
	"fmt"

	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// ResolveHintStates computes the UI-facing affordance for every hint
// category from the active strategy, the session's revealed-hints map, the
// player's hint-point balance and the global interaction lock.
func ResolveHintStates(strategy difficulty.HintStrategy, hintsUsed map[models.HintCategory]bool, balance int, interactionsDisabled bool) models.HintState {
	state := models.HintState{
		Statuses: make(map[models.HintCategory]models.HintStatus, len(models.HintCategories)),
	}

	switch strategy {
	case difficulty.StrategyAllRevealed, difficulty.StrategyHintsOnlyRevealed:
		for _, category := range models.HintCategories {
			state.Statuses[category] = models.HintUsed
		}
		state.Label = "All hints revealed"
		state.CanToggle = false

	case difficulty.StrategyUserSpend:
		for _, category := range models.HintCategories {
			switch {
			case hintsUsed[category]:
				state.Statuses[category] = models.HintUsed
			case balance > 0 && !interactionsDisabled:
				state.Statuses[category] = models.HintAvailable
			default:
				state.Statuses[category] = models.HintDisabled
			}
		}
		state.Label = fmt.Sprintf("Hint points: %d", balance)
		state.CanToggle = !interactionsDisabled

	case difficulty.StrategyImplicitFeedback:
		for _, category := range models.HintCategories {
			if hintsUsed[category] {
				state.Statuses[category] = models.HintUsed
			} else {
				state.Statuses[category] = models.HintDisabled
			}
		}
		state.Label = "Hints come from your guesses"
		state.CanToggle = false

	case difficulty.StrategyNoneDisabled, difficulty.StrategyExtremeChallenge:
		for _, category := range models.HintCategories {
			state.Statuses[category] = models.HintDisabled
		}
		state.Label = ""
		state.CanToggle = false

	default:
		for _, category := range models.HintCategories {
			state.Statuses[category] = models.HintDisabled
		}
		state.Label = ""
		state.CanToggle = false
	}

	if interactionsDisabled {
		state.Label = "Game over"
		state.CanToggle = false
	}
	return state
}
