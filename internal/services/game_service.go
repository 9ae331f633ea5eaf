package services

import (
	"context"
	"sync"
	"time"

	"github.com/unrealities/talkie-trivia-sub000/internal/catalog"
	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/errors"
	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/repository"
	"github.com/unrealities/talkie-trivia-sub000/internal/session"
	"github.com/unrealities/talkie-trivia-sub000/internal/telemetry"
)

// GameService handles session lifecycle and gameplay actions
type GameService interface {
	Snapshot(ctx context.Context, playerID string) (session.Snapshot, *models.LastGuessResult, error)
	MakeGuess(ctx context.Context, playerID string, itemID int64) (session.Snapshot, *models.LastGuessResult, error)
	UseHint(ctx context.Context, playerID string, category models.HintCategory) (models.HintState, error)
	GiveUp(ctx context.Context, playerID string) (session.Snapshot, error)
	RevealComplete(ctx context.Context, playerID string) (session.Snapshot, error)
	RetrySave(ctx context.Context, playerID string) error
	ChangeDifficulty(ctx context.Context, playerID, level string) (session.Snapshot, error)
	Stats(ctx context.Context, playerID string) (*models.PlayerStats, error)
	History(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error)
	SearchItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error)
	SeenTip(ctx context.Context, playerID, tip string) (bool, error)
	MarkTipSeen(ctx context.Context, playerID, tip string) error
}

type gameService struct {
	games    repository.GameRepository
	settings repository.SettingsRepository
	catalog  *catalog.Service
	notifier telemetry.Notifier

	startingHintPoints int

	mu      sync.Mutex
	engines map[string]*session.Engine // keyed by playerID; one live day per player
	days    map[string]string          // playerID -> dateKey the engine belongs to
}

// NewGameService creates a new GameService
func NewGameService(games repository.GameRepository, settings repository.SettingsRepository, cat *catalog.Service, notifier telemetry.Notifier, startingHintPoints int) GameService {
	return &gameService{
		games:              games,
		settings:           settings,
		catalog:            cat,
		notifier:           notifier,
		startingHintPoints: startingHintPoints,
		engines:            make(map[string]*session.Engine),
		days:               make(map[string]string),
	}
}

// engineFor returns the live engine for the player's current day, creating
// one from persisted state on first touch or on day rollover.
func (s *gameService) engineFor(ctx context.Context, playerID string) (*session.Engine, error) {
	if playerID == "" {
		return nil, errors.NewValidationError("player_id", "must not be empty")
	}
	dateKey := catalog.DateKey(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	if eng, ok := s.engines[playerID]; ok && s.days[playerID] == dateKey {
		return eng, nil
	}

	log := logger.FromContext(ctx)
	log.Debug("initializing session: player=%s date=%s", playerID, dateKey)

	stored, err := s.settings.GetDifficulty(ctx, playerID)
	if err != nil {
		log.Warn("failed to read stored difficulty, using default: %v", err)
		stored = ""
	}
	mode := difficulty.Parse(stored)

	item, err := s.catalog.ItemOfDay(ctx, dateKey)
	if err != nil {
		return nil, err
	}

	game, err := s.games.FetchOrCreateSession(ctx, playerID, dateKey, *item, mode.GuessesMax, string(mode.Level))
	if err != nil {
		log.Error("failed to fetch or create session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats, err := s.games.FetchOrCreateStats(ctx, playerID, s.startingHintPoints)
	if err != nil {
		log.Error("failed to fetch or create stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	eng := session.New(game, stats, mode, s.games, s.catalog, s.notifier, session.Callbacks{})
	s.engines[playerID] = eng
	s.days[playerID] = dateKey
	return eng, nil
}

func (s *gameService) Snapshot(ctx context.Context, playerID string) (session.Snapshot, *models.LastGuessResult, error) {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return session.Snapshot{}, nil, err
	}
	return eng.Snapshot(), eng.ConsumeLastGuess(), nil
}

func (s *gameService) MakeGuess(ctx context.Context, playerID string, itemID int64) (session.Snapshot, *models.LastGuessResult, error) {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return session.Snapshot{}, nil, err
	}

	selected, err := s.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return session.Snapshot{}, nil, err
	}

	// A save failure is surfaced alongside the updated state; the guess
	// itself always stands.
	saveErr := eng.MakeGuess(ctx, *selected)
	return eng.Snapshot(), eng.ConsumeLastGuess(), saveErr
}

func (s *gameService) UseHint(ctx context.Context, playerID string, category models.HintCategory) (models.HintState, error) {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return models.HintState{}, err
	}
	eng.UseHint(ctx, category)
	return eng.HintStates(), nil
}

func (s *gameService) GiveUp(ctx context.Context, playerID string) (session.Snapshot, error) {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return session.Snapshot{}, err
	}
	saveErr := eng.GiveUp(ctx)
	return eng.Snapshot(), saveErr
}

func (s *gameService) RevealComplete(ctx context.Context, playerID string) (session.Snapshot, error) {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return session.Snapshot{}, err
	}
	eng.RevealComplete(ctx)
	return eng.Snapshot(), nil
}

func (s *gameService) RetrySave(ctx context.Context, playerID string) error {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return err
	}
	return eng.RetrySave(ctx)
}

func (s *gameService) ChangeDifficulty(ctx context.Context, playerID, level string) (session.Snapshot, error) {
	eng, err := s.engineFor(ctx, playerID)
	if err != nil {
		return session.Snapshot{}, err
	}

	mode, ok := difficulty.Lookup(difficulty.Level(level))
	if !ok {
		return session.Snapshot{}, errors.NewValidationError("difficulty", "unknown level "+level)
	}

	// The stored preference always follows the player's choice; it governs
	// future sessions regardless of how this one is scored.
	if err := s.settings.SetDifficulty(ctx, playerID, level); err != nil {
		logger.FromContext(ctx).Warn("failed to store difficulty preference: %v", err)
	}

	saveErr := eng.ChangeDifficulty(ctx, mode)
	return eng.Snapshot(), saveErr
}

func (s *gameService) Stats(ctx context.Context, playerID string) (*models.PlayerStats, error) {
	if playerID == "" {
		return nil, errors.NewValidationError("player_id", "must not be empty")
	}
	stats, err := s.games.FetchOrCreateStats(ctx, playerID, s.startingHintPoints)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *gameService) History(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error) {
	if filter.PlayerID == "" {
		return nil, errors.NewValidationError("player_id", "must not be empty")
	}
	entries, err := s.games.FetchHistory(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

func (s *gameService) SearchItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error) {
	return s.catalog.Search(ctx, query, limit)
}

// SeenTip reports whether a one-time UI tip was already shown to the player.
func (s *gameService) SeenTip(ctx context.Context, playerID, tip string) (bool, error) {
	if playerID == "" {
		return false, errors.NewValidationError("player_id", "must not be empty")
	}
	seen, err := s.settings.GetSeenTip(ctx, playerID, tip)
	if err != nil {
		return false, errors.NewInternalError(err)
	}
	return seen, nil
}

func (s *gameService) MarkTipSeen(ctx context.Context, playerID, tip string) error {
	if playerID == "" {
		return errors.NewValidationError("player_id", "must not be empty")
	}
	if err := s.settings.SetSeenTip(ctx, playerID, tip); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}
