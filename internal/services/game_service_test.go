package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unrealities/talkie-trivia-sub000/internal/catalog"
	"github.com/unrealities/talkie-trivia-sub000/internal/errors"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/services"
	"github.com/unrealities/talkie-trivia-sub000/internal/testutil/mocks"
)

type serviceFixture struct {
	games    *mocks.MockGameRepository
	settings *mocks.MockSettingsRepository
	catalog  *mocks.MockCatalogRepository
	svc      services.GameService
}

var dayItem = &models.TriviaItem{
	ID:    1,
	Title: "Inception",
	Hints: map[models.HintCategory]string{
		models.HintDecade:   "2010s",
		models.HintDirector: "Christopher Nolan",
		models.HintGenre:    "Sci-Fi",
		models.HintActor:    "Leonardo DiCaprio",
	},
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		games:    new(mocks.MockGameRepository),
		settings: new(mocks.MockSettingsRepository),
		catalog:  new(mocks.MockCatalogRepository),
	}
	f.svc = services.NewGameService(f.games, f.settings, catalog.NewService(f.catalog), nil, 3)
	return f
}

// expectSession wires the mocks for a fresh medium-difficulty session around
// the day's item.
func (f *serviceFixture) expectSession() {
	f.settings.On("GetDifficulty", mock.Anything, "player-1").Return("", nil)
	f.catalog.On("ItemCount", mock.Anything).Return(12, nil)
	f.catalog.On("ItemByIndex", mock.Anything, mock.AnythingOfType("int")).Return(dayItem, nil)

	f.games.On("FetchOrCreateSession", mock.Anything, "player-1", mock.AnythingOfType("string"), *dayItem, 5, "LEVEL_3").
		Return(&models.PlayerGame{
			ID:         "game-1",
			PlayerID:   "player-1",
			Item:       *dayItem,
			GuessesMax: 5,
			Difficulty: "LEVEL_3",
			Guesses:    []models.Guess{},
			HintsUsed:  make(map[models.HintCategory]bool),
			Status:     models.StatusPlaying,
		}, nil)
	f.games.On("FetchOrCreateStats", mock.Anything, "player-1", 3).
		Return(&models.PlayerStats{PlayerID: "player-1", HintPoints: 3}, nil)
}

func TestSnapshot_EmptyPlayerID(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.Snapshot(context.Background(), "")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSnapshot_InitializesSessionOnce(t *testing.T) {
	f := newFixture(t)
	f.expectSession()

	snap, _, err := f.svc.Snapshot(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, "game-1", snap.Game.ID)
	assert.Equal(t, "LEVEL_3", snap.Game.Difficulty)

	_, _, err = f.svc.Snapshot(context.Background(), "player-1")
	require.NoError(t, err)

	// The second snapshot reuses the live engine.
	f.games.AssertNumberOfCalls(t, "FetchOrCreateSession", 1)
}

func TestMakeGuess_CorrectAnswer(t *testing.T) {
	f := newFixture(t)
	f.expectSession()
	f.catalog.On("ItemByID", mock.Anything, int64(1)).Return(dayItem, nil)
	f.games.On("SaveProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	snap, last, err := f.svc.MakeGuess(context.Background(), "player-1", 1)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Correct)
	assert.True(t, snap.Game.CorrectAnswer)
	assert.Equal(t, models.StatusRevealing, snap.Game.Status)
	assert.Greater(t, snap.Score, 0)
}

func TestMakeGuess_UnknownItem(t *testing.T) {
	f := newFixture(t)
	f.expectSession()
	f.catalog.On("ItemByID", mock.Anything, int64(404)).Return(nil, nil)

	_, _, err := f.svc.MakeGuess(context.Background(), "player-1", 404)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestChangeDifficulty_UnknownLevel(t *testing.T) {
	f := newFixture(t)
	f.expectSession()

	_, err := f.svc.ChangeDifficulty(context.Background(), "player-1", "LEVEL_42")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestChangeDifficulty_StoresPreference(t *testing.T) {
	f := newFixture(t)
	f.expectSession()
	f.settings.On("SetDifficulty", mock.Anything, "player-1", "LEVEL_5").Return(nil)
	f.games.On("SaveProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	snap, err := f.svc.ChangeDifficulty(context.Background(), "player-1", "LEVEL_5")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Game.GuessesMax)
	assert.Equal(t, "LEVEL_3", snap.Game.Difficulty, "scoring tier stays put on upgrade")
	f.settings.AssertCalled(t, "SetDifficulty", mock.Anything, "player-1", "LEVEL_5")
}

func TestUseHint_ReturnsResolvedState(t *testing.T) {
	f := newFixture(t)
	f.expectSession()

	state, err := f.svc.UseHint(context.Background(), "player-1", models.HintDecade)
	require.NoError(t, err)
	// Medium difficulty never lets hints be spent manually.
	assert.Equal(t, models.HintDisabled, state.Statuses[models.HintDecade])
}

func TestStats_DelegatesToRepository(t *testing.T) {
	f := newFixture(t)
	f.games.On("FetchOrCreateStats", mock.Anything, "player-1", 3).
		Return(&models.PlayerStats{PlayerID: "player-1", GamesPlayed: 9, HintPoints: 1}, nil)

	stats, err := f.svc.Stats(context.Background(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, 9, stats.GamesPlayed)
}

func TestHistory_RequiresPlayerID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.History(context.Background(), models.HistoryFilter{})
	require.Error(t, err)
}

func TestSeenTip_RoundTrip(t *testing.T) {
	f := newFixture(t)
	f.settings.On("GetSeenTip", mock.Anything, "player-1", "hint-intro").Return(false, nil)
	f.settings.On("SetSeenTip", mock.Anything, "player-1", "hint-intro").Return(nil)

	seen, err := f.svc.SeenTip(context.Background(), "player-1", "hint-intro")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, f.svc.MarkTipSeen(context.Background(), "player-1", "hint-intro"))
	f.settings.AssertCalled(t, "SetSeenTip", mock.Anything, "player-1", "hint-intro")
}

func TestHistory_Delegates(t *testing.T) {
	f := newFixture(t)
	filter := models.HistoryFilter{PlayerID: "player-1", Limit: 10}
	f.games.On("FetchHistory", mock.Anything, filter).
		Return([]models.GameHistoryEntry{{ID: "h1"}, {ID: "h2"}}, nil)

	entries, err := f.svc.History(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
