package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/scoring"
)

func wonGame(difficulty string, guessesMax, guessesUsed int) *models.PlayerGame {
	g := &models.PlayerGame{
		ID:            "game-1",
		Difficulty:    difficulty,
		GuessesMax:    guessesMax,
		CorrectAnswer: true,
		HintsUsed:     make(map[models.HintCategory]bool),
	}
	for i := 0; i < guessesUsed; i++ {
		correct := i == guessesUsed-1
		g.Guesses = append(g.Guesses, models.Guess{ItemID: int64(i + 100), Correct: correct})
	}
	return g
}

func TestCalculateScore_HardFirstGuess(t *testing.T) {
	game := wonGame("LEVEL_4", 5, 1)
	assert.Equal(t, 850, scoring.CalculateScore(game))
}

func TestCalculateScore_MediumThirdGuess(t *testing.T) {
	game := wonGame("LEVEL_3", 5, 3)
	assert.Equal(t, 490, scoring.CalculateScore(game))
}

func TestCalculateScore_MediumLastGuess(t *testing.T) {
	// Winning on the final allowed guess earns only the base win points.
	game := wonGame("LEVEL_3", 5, 5)
	assert.Equal(t, 280, scoring.CalculateScore(game))
}

func TestCalculateScore_EasyWithHintPenalty(t *testing.T) {
	game := wonGame("LEVEL_2", 5, 1)
	game.HintsUsed[models.HintDecade] = true
	game.HintsUsed[models.HintDirector] = true
	assert.Equal(t, 450, scoring.CalculateScore(game))
}

func TestCalculateScore_ExtremePerfect(t *testing.T) {
	game := wonGame("LEVEL_5", 3, 1)
	assert.Equal(t, 1000, scoring.CalculateScore(game))
}

func TestCalculateScore_HintsFreeOutsideUserSpend(t *testing.T) {
	// Implicit reveals on medium never cost points.
	withHints := wonGame("LEVEL_3", 5, 3)
	withHints.HintsUsed[models.HintGenre] = true
	withHints.HintsUsed[models.HintActor] = true
	without := wonGame("LEVEL_3", 5, 3)

	assert.Equal(t, scoring.CalculateScore(without), scoring.CalculateScore(withHints))
}

func TestCalculateScore_LossScoresZero(t *testing.T) {
	game := wonGame("LEVEL_4", 5, 5)
	game.CorrectAnswer = false
	assert.Equal(t, 0, scoring.CalculateScore(game))
}

func TestCalculateScore_GaveUpScoresZero(t *testing.T) {
	game := wonGame("LEVEL_3", 5, 2)
	game.CorrectAnswer = false
	game.GaveUp = true
	assert.Equal(t, 0, scoring.CalculateScore(game))
}

func TestCalculateScore_UnknownDifficultyScoresZero(t *testing.T) {
	game := wonGame("LEVEL_99", 5, 1)
	assert.Equal(t, 0, scoring.CalculateScore(game))
}

func TestCalculateScore_FewerGuessesNeverScoreLess(t *testing.T) {
	levels := []struct {
		level      string
		guessesMax int
	}{
		{"LEVEL_1", 6},
		{"LEVEL_2", 5},
		{"LEVEL_3", 5},
		{"LEVEL_4", 5},
		{"LEVEL_5", 3},
	}
	for _, lv := range levels {
		previous := -1
		for used := lv.guessesMax; used >= 1; used-- {
			score := scoring.CalculateScore(wonGame(lv.level, lv.guessesMax, used))
			assert.GreaterOrEqual(t, score, previous, "level %s, %d guesses", lv.level, used)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, scoring.MaxGameScore)
			previous = score
		}
	}
}

func TestCalculateScore_NeverNegative(t *testing.T) {
	game := wonGame("LEVEL_2", 5, 5)
	for _, c := range models.HintCategories {
		game.HintsUsed[c] = true
	}
	// Base 250 + 0 earned - 100 penalty stays positive, but pile on fake
	// categories to force the floor.
	game.HintsUsed["extra1"] = true
	game.HintsUsed["extra2"] = true
	game.HintsUsed["extra3"] = true
	game.HintsUsed["extra4"] = true
	game.HintsUsed["extra5"] = true
	game.HintsUsed["extra6"] = true

	score := scoring.CalculateScore(game)
	assert.GreaterOrEqual(t, score, 0)
}
