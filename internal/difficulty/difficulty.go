package difficulty

import (
	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
)

// Level identifies one of the five difficulty tiers.
type Level string

const (
	Level1 Level = "LEVEL_1"
	Level2 Level = "LEVEL_2"
	Level3 Level = "LEVEL_3"
	Level4 Level = "LEVEL_4"
	Level5 Level = "LEVEL_5"
)

// DefaultLevel is used when no stored preference exists or a stored value
// fails validation.
const DefaultLevel = Level3

// HintStrategy is the closed set of policies governing how hint categories
// become visible at a given difficulty.
type HintStrategy string

const (
	StrategyAllRevealed       HintStrategy = "all_revealed"
	StrategyHintsOnlyRevealed HintStrategy = "hints_only_revealed"
	StrategyUserSpend         HintStrategy = "user_spend"
	StrategyImplicitFeedback  HintStrategy = "implicit_feedback"
	StrategyNoneDisabled      HintStrategy = "none_disabled"
	StrategyExtremeChallenge  HintStrategy = "extreme_challenge"
)

// Mode is the full configuration for one difficulty tier.
type Mode struct {
	Level           Level
	Label           string
	Description     string
	Rank            int // strictly increasing with difficulty
	GuessesMax      int
	Strategy        HintStrategy
	ScoreMultiplier float64 // fraction of the fixed maximum score
	ScoreRangePct   float64 // performance-dependent fraction of that maximum
}

var registry = map[Level]Mode{
	Level1: {
		Level:           Level1,
		Label:           "Novice",
		Description:     "All hints revealed from the start. Extra guesses.",
		Rank:            1,
		GuessesMax:      6,
		Strategy:        StrategyAllRevealed,
		ScoreMultiplier: 0.25,
		ScoreRangePct:   0.5,
	},
	Level2: {
		Level:           Level2,
		Label:           "Easy",
		Description:     "Spend hint points to reveal clues when you need them.",
		Rank:            2,
		GuessesMax:      5,
		Strategy:        StrategyUserSpend,
		ScoreMultiplier: 0.5,
		ScoreRangePct:   0.5,
	},
	Level3: {
		Level:           Level3,
		Label:           "Medium",
		Description:     "Wrong guesses that share traits with the answer reveal hints.",
		Rank:            3,
		GuessesMax:      5,
		Strategy:        StrategyImplicitFeedback,
		ScoreMultiplier: 0.7,
		ScoreRangePct:   0.6,
	},
	Level4: {
		Level:           Level4,
		Label:           "Hard",
		Description:     "No hints. Just you and the plot.",
		Rank:            4,
		GuessesMax:      5,
		Strategy:        StrategyNoneDisabled,
		ScoreMultiplier: 0.85,
		ScoreRangePct:   0.7,
	},
	Level5: {
		Level:           Level5,
		Label:           "Extreme",
		Description:     "No hints and only three guesses.",
		Rank:            5,
		GuessesMax:      3,
		Strategy:        StrategyExtremeChallenge,
		ScoreMultiplier: 1.0,
		ScoreRangePct:   0.8,
	},
}

// Lookup returns the mode for a level. The second return is false for
// unknown levels.
func Lookup(level Level) (Mode, bool) {
	m, ok := registry[level]
	return m, ok
}

// Parse validates a stored level string, falling back to DefaultLevel when
// the value is unknown. Unknown values are logged, never propagated.
func Parse(s string) Mode {
	if m, ok := registry[Level(s)]; ok {
		return m
	}
	if s != "" {
		logger.Warn("unknown difficulty level %q, falling back to %s", s, DefaultLevel)
	}
	return registry[DefaultLevel]
}

// Rank returns the numeric rank of a level, or 0 for unknown levels. Ranks
// are used only by the mid-game difficulty-change policy.
func Rank(level Level) int {
	if m, ok := registry[level]; ok {
		return m.Rank
	}
	return 0
}

// Levels lists all tiers in ascending rank order.
func Levels() []Mode {
	return []Mode{registry[Level1], registry[Level2], registry[Level3], registry[Level4], registry[Level5]}
}
