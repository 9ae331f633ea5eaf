package scoring

import (
	"math"

	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

const (
	// MaxGameScore is the fixed ceiling a perfect game at the hardest
	// difficulty earns before multipliers.
	MaxGameScore = 1000

	// HintPenalty is subtracted per manually revealed hint on the
	// user-spend tier. Hints revealed by other strategies are free.
	HintPenalty = 25
)

// CalculateScore computes the final score for a finished session. Losses
// score zero unconditionally. Unknown difficulties are logged and score
// zero rather than failing.
func CalculateScore(game *models.PlayerGame) int {
	if !game.CorrectAnswer {
		return 0
	}

	mode, ok := difficulty.Lookup(difficulty.Level(game.Difficulty))
	if !ok {
		logger.Error("score calculation: unknown difficulty %q on game %s", game.Difficulty, game.ID)
		return 0
	}

	maxScore := MaxGameScore * mode.ScoreMultiplier
	performancePool := maxScore * mode.ScoreRangePct
	baseWinPoints := maxScore - performancePool

	guessesUsed := len(game.Guesses)
	performanceFactor := 1.0
	if game.GuessesMax > 1 {
		performanceFactor = float64(game.GuessesMax-guessesUsed) / float64(game.GuessesMax-1)
	}
	earned := performancePool * performanceFactor

	penalty := 0.0
	if mode.Strategy == difficulty.StrategyUserSpend {
		penalty = float64(countHintsUsed(game)) * HintPenalty
	}

	score := int(math.Round(baseWinPoints + earned - penalty))
	if score < 0 {
		return 0
	}
	return score
}

func countHintsUsed(game *models.PlayerGame) int {
	n := 0
	for _, used := range game.HintsUsed {
		if used {
			n++
		}
	}
	return n
}
