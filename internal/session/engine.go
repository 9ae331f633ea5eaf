package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/errors"
	"github.com/unrealities/talkie-trivia-sub000/internal/hints"
	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/scoring"
	"github.com/unrealities/talkie-trivia-sub000/internal/telemetry"
)

const correctFeedback = "You got it!"

// ProgressSaver persists the session. SaveProgress must be atomic across
// the game, the stats and the optional history entry.
type ProgressSaver interface {
	SaveProgress(ctx context.Context, game *models.PlayerGame, stats *models.PlayerStats, entry *models.GameHistoryEntry) error
}

// ItemResolver looks up the full-detail record for a guessed item, used by
// the implicit hint comparison.
type ItemResolver interface {
	ItemByID(ctx context.Context, id int64) (*models.TriviaItem, error)
}

// Callbacks are advisory presentation signals. All of them may be nil; none
// of them participate in correctness.
type Callbacks struct {
	OnStatusChange func(models.GameStatus)
	OnCelebrate    func()
	OnShowResult   func()
	OnNotice       func(string)
}

// Engine owns one player's session state and is its single writer. All
// mutating actions are serialized by the engine's mutex; the presentation
// layer only ever sees snapshots.
type Engine struct {
	mu           sync.Mutex
	game         *models.PlayerGame
	stats        *models.PlayerStats
	mode         difficulty.Mode
	saver        ProgressSaver
	items        ItemResolver
	notifier     telemetry.Notifier
	callbacks    Callbacks
	lastGuess    *models.LastGuessResult
	pendingEntry *models.GameHistoryEntry
	finalScore   int
	locked       bool
	log          *logger.Logger
}

// New wires an engine around an existing session and stats record. The
// active mode governs guesses allowed and hint behavior; the scoring
// difficulty stays whatever the game records.
func New(game *models.PlayerGame, stats *models.PlayerStats, activeMode difficulty.Mode, saver ProgressSaver, items ItemResolver, notifier telemetry.Notifier, callbacks Callbacks) *Engine {
	if game.HintsUsed == nil {
		game.HintsUsed = make(map[models.HintCategory]bool)
	}
	if game.Status == "" {
		game.Status = models.StatusPlaying
	}
	if notifier == nil {
		notifier = telemetry.NopNotifier{}
	}
	e := &Engine{
		game:      game,
		stats:     stats,
		mode:      activeMode,
		saver:     saver,
		items:     items,
		notifier:  notifier,
		callbacks: callbacks,
		log:       logger.Default().WithPrefix("session").WithField("game_id", game.ID),
	}
	// A session resumed after its game over stays locked.
	if game.IsTerminal() || game.StatsProcessed {
		e.locked = true
		e.game.Status = models.StatusGameOver
	}
	return e
}

// MakeGuess records a candidate answer. Terminal sessions ignore the call
// entirely. The returned error, if any, is a non-fatal persistence failure;
// the in-memory guess always stands.
func (e *Engine) MakeGuess(ctx context.Context, selected models.TriviaItem) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.game.CorrectAnswer || e.game.GaveUp || len(e.game.Guesses) >= e.game.GuessesMax {
		e.log.Debug("guess ignored: session terminal")
		return nil
	}

	correct := selected.ID == e.game.Item.ID
	guess := models.Guess{
		ItemID:    selected.ID,
		ItemTitle: selected.Title,
		Correct:   correct,
		CreatedAt: time.Now(),
	}

	feedback := hints.NeutralFeedback
	var revealed map[models.HintCategory]bool
	if correct {
		feedback = correctFeedback
	} else if e.mode.Strategy == difficulty.StrategyImplicitFeedback {
		full := e.resolveItem(ctx, selected.ID)
		result := hints.Generate(full, &e.game.Item, e.game.HintsUsed)
		feedback = result.Feedback
		revealed = result.RevealedHints
		for _, category := range models.HintCategories {
			if revealed[category] {
				guess.HintReveals = append(guess.HintReveals, category)
			}
		}
	}

	if e.mode.Strategy == difficulty.StrategyExtremeChallenge {
		// The attempt at the boundary is dropped, not rejected. Matches
		// the shipped behavior; see DESIGN.md before changing.
		if len(e.game.Guesses) < e.game.GuessesMax {
			e.game.Guesses = append(e.game.Guesses, guess)
		}
	} else {
		e.game.Guesses = append(e.game.Guesses, guess)
	}

	if correct {
		e.game.CorrectAnswer = true
		if e.callbacks.OnCelebrate != nil {
			e.callbacks.OnCelebrate()
		}
	}
	for category, on := range revealed {
		if on {
			e.game.HintsUsed[category] = true
		}
	}
	e.lastGuess = &models.LastGuessResult{Correct: correct, Feedback: feedback}

	e.notifier.Notify(ctx, telemetry.Event{
		Type:     telemetry.EventGuessMade,
		PlayerID: e.game.PlayerID,
		GameID:   e.game.ID,
		Fields:   map[string]any{"guess_number": len(e.game.Guesses), "correct": correct},
	})

	return e.finish(ctx)
}

// UseHint spends one hint point to reveal a category. Only the user-spend
// strategy meters hints; everywhere else this is a no-op, as are repeat
// reveals and spends with an empty balance.
func (e *Engine) UseHint(ctx context.Context, category models.HintCategory) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.locked || e.mode.Strategy != difficulty.StrategyUserSpend {
		return
	}
	if e.game.HintsUsed[category] || e.stats.HintPoints <= 0 {
		return
	}

	e.game.HintsUsed[category] = true
	e.stats.HintPoints--
	e.stats.HintsUsedTotal++

	e.notifier.Notify(ctx, telemetry.Event{
		Type:     telemetry.EventHintUsed,
		PlayerID: e.game.PlayerID,
		GameID:   e.game.ID,
		Fields:   map[string]any{"category": string(category), "points_left": e.stats.HintPoints},
	})

	if err := e.saver.SaveProgress(ctx, e.game, e.stats, nil); err != nil {
		e.log.Warn("continuity save after hint failed: %v", err)
	}
}

// GiveUp forfeits the session and runs the game-over path.
func (e *Engine) GiveUp(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.game.IsTerminal() {
		return nil
	}
	e.game.GaveUp = true
	return e.finish(ctx)
}

// ChangeDifficulty applies a new tier mid-session. The guess allowance
// always follows the new tier; the recorded scoring difficulty is only
// rewritten downward so a player can never claim a harder multiplier late.
func (e *Engine) ChangeDifficulty(ctx context.Context, newMode difficulty.Mode) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	previous := e.mode.Level
	e.mode = newMode
	e.game.GuessesMax = newMode.GuessesMax

	if newMode.Rank < difficulty.Rank(difficulty.Level(e.game.Difficulty)) {
		e.game.Difficulty = string(newMode.Level)
		if e.callbacks.OnNotice != nil {
			e.callbacks.OnNotice("Difficulty lowered. This game will be scored as " + newMode.Label + ".")
		}
	}

	e.notifier.Notify(ctx, telemetry.Event{
		Type:     telemetry.EventDifficultyChanged,
		PlayerID: e.game.PlayerID,
		GameID:   e.game.ID,
		Fields:   map[string]any{"from": string(previous), "to": string(newMode.Level)},
	})

	return e.finish(ctx)
}

// RevealComplete signals that the answer reveal animation finished, moving
// the session from revealing to gameOver.
func (e *Engine) RevealComplete(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.game.Status != models.StatusRevealing {
		return
	}
	e.setStatus(models.StatusGameOver)
	if e.callbacks.OnShowResult != nil {
		e.callbacks.OnShowResult()
	}
}

// RetrySave re-attempts a failed game-over persistence call. Stats are
// never re-derived; the same snapshot is written again.
func (e *Engine) RetrySave(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.game.StatsProcessed {
		return nil
	}
	return e.persistFinished(ctx)
}

// finish runs the game-over orchestration on the first terminal detection
// and an advisory continuity save otherwise. Callers hold the mutex.
func (e *Engine) finish(ctx context.Context) error {
	if !e.game.IsTerminal() {
		if err := e.saver.SaveProgress(ctx, e.game, e.stats, nil); err != nil {
			e.log.Warn("continuity save failed: %v", err)
		}
		return nil
	}
	if e.game.StatsProcessed {
		return nil
	}

	e.locked = true
	e.setStatus(models.StatusRevealing)

	score := scoring.CalculateScore(e.game)
	e.finalScore = score

	guessesUsed := len(e.game.Guesses)
	e.stats.GamesPlayed++
	e.stats.AllTimeScore += score
	if e.game.CorrectAnswer {
		e.stats.CurrentStreak++
		if e.stats.CurrentStreak > e.stats.MaxStreak {
			e.stats.MaxStreak = e.stats.CurrentStreak
		}
		if guessesUsed >= 1 && guessesUsed <= models.WinHistogramSize {
			e.stats.Wins[guessesUsed-1]++
		}
	} else {
		e.stats.CurrentStreak = 0
	}

	now := time.Now()
	e.game.EndedAt = &now
	e.pendingEntry = &models.GameHistoryEntry{
		ID:         uuid.NewString(),
		PlayerID:   e.game.PlayerID,
		DateKey:    e.game.DateKey,
		ItemID:     e.game.Item.ID,
		ItemTitle:  e.game.Item.Title,
		PosterPath: e.game.Item.PosterPath,
		Correct:    e.game.CorrectAnswer,
		GaveUp:     e.game.GaveUp,
		GuessCount: guessesUsed,
		GuessesMax: e.game.GuessesMax,
		Difficulty: e.game.Difficulty,
		Score:      score,
		GameMode:   "daily",
		CreatedAt:  now,
	}

	// Flipped before the save so a duplicate trigger is a no-op even if the
	// write is still in flight or has failed.
	e.game.StatsProcessed = true

	e.notifier.Notify(ctx, telemetry.Event{
		Type:     e.outcomeEvent(),
		PlayerID: e.game.PlayerID,
		GameID:   e.game.ID,
		Fields:   map[string]any{"score": score, "guesses": guessesUsed, "difficulty": e.game.Difficulty},
	})

	return e.persistFinished(ctx)
}

func (e *Engine) persistFinished(ctx context.Context) error {
	if e.pendingEntry == nil {
		return nil
	}
	if err := e.saver.SaveProgress(ctx, e.game, e.stats, e.pendingEntry); err != nil {
		e.log.Error("game over save failed: %v", err)
		return errors.NewSaveFailedError(err)
	}
	e.pendingEntry = nil
	e.log.Info("game over persisted: score=%d correct=%t gave_up=%t", e.finalScore, e.game.CorrectAnswer, e.game.GaveUp)
	return nil
}

func (e *Engine) outcomeEvent() telemetry.EventType {
	switch {
	case e.game.CorrectAnswer:
		return telemetry.EventGameWon
	case e.game.GaveUp:
		return telemetry.EventGameGivenUp
	default:
		return telemetry.EventGameLost
	}
}

func (e *Engine) setStatus(status models.GameStatus) {
	e.game.Status = status
	if e.callbacks.OnStatusChange != nil {
		e.callbacks.OnStatusChange(status)
	}
}

func (e *Engine) resolveItem(ctx context.Context, id int64) *models.TriviaItem {
	if e.items == nil {
		return nil
	}
	item, err := e.items.ItemByID(ctx, id)
	if err != nil {
		e.log.Warn("no detail record for guessed item %d: %v", id, err)
		return nil
	}
	return item
}
