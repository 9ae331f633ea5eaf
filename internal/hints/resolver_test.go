package hints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/hints"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

func TestResolveHintStates_AllRevealed(t *testing.T) {
	state := hints.ResolveHintStates(difficulty.StrategyAllRevealed, nil, 0, false)
	for _, c := range models.HintCategories {
		assert.Equal(t, models.HintUsed, state.Statuses[c])
	}
	assert.False(t, state.CanToggle)
}

func TestResolveHintStates_UserSpend(t *testing.T) {
	used := map[models.HintCategory]bool{models.HintDecade: true}

	state := hints.ResolveHintStates(difficulty.StrategyUserSpend, used, 2, false)
	assert.Equal(t, models.HintUsed, state.Statuses[models.HintDecade])
	assert.Equal(t, models.HintAvailable, state.Statuses[models.HintDirector])
	assert.Equal(t, models.HintAvailable, state.Statuses[models.HintGenre])
	assert.Equal(t, models.HintAvailable, state.Statuses[models.HintActor])
	assert.Equal(t, "Hint points: 2", state.Label)
	assert.True(t, state.CanToggle)
}

func TestResolveHintStates_UserSpendEmptyBalance(t *testing.T) {
	used := map[models.HintCategory]bool{models.HintDecade: true}

	state := hints.ResolveHintStates(difficulty.StrategyUserSpend, used, 0, false)
	// Already-revealed hints stay visible; everything else locks.
	assert.Equal(t, models.HintUsed, state.Statuses[models.HintDecade])
	assert.Equal(t, models.HintDisabled, state.Statuses[models.HintDirector])
	assert.Equal(t, models.HintDisabled, state.Statuses[models.HintGenre])
	assert.Equal(t, models.HintDisabled, state.Statuses[models.HintActor])
}

func TestResolveHintStates_ImplicitFeedback(t *testing.T) {
	used := map[models.HintCategory]bool{models.HintGenre: true}

	state := hints.ResolveHintStates(difficulty.StrategyImplicitFeedback, used, 5, false)
	assert.Equal(t, models.HintUsed, state.Statuses[models.HintGenre])
	assert.Equal(t, models.HintDisabled, state.Statuses[models.HintDecade])
	assert.False(t, state.CanToggle)
}

func TestResolveHintStates_DisabledStrategies(t *testing.T) {
	for _, strategy := range []difficulty.HintStrategy{
		difficulty.StrategyNoneDisabled,
		difficulty.StrategyExtremeChallenge,
	} {
		state := hints.ResolveHintStates(strategy, nil, 5, false)
		for _, c := range models.HintCategories {
			assert.Equal(t, models.HintDisabled, state.Statuses[c], "strategy %s", strategy)
		}
		assert.False(t, state.CanToggle)
	}
}

func TestResolveHintStates_GameOverOverride(t *testing.T) {
	state := hints.ResolveHintStates(difficulty.StrategyUserSpend, nil, 3, true)
	assert.Equal(t, "Game over", state.Label)
	assert.False(t, state.CanToggle)
	for _, c := range models.HintCategories {
		assert.Equal(t, models.HintDisabled, state.Statuses[c])
	}
}
