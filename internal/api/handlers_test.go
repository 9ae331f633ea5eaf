package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unrealities/talkie-trivia-sub000/internal/api"
	"github.com/unrealities/talkie-trivia-sub000/internal/errors"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
	"github.com/unrealities/talkie-trivia-sub000/internal/session"
)

// MockGameService is a mock implementation of services.GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) Snapshot(ctx context.Context, playerID string) (session.Snapshot, *models.LastGuessResult, error) {
	args := m.Called(ctx, playerID)
	var last *models.LastGuessResult
	if args.Get(1) != nil {
		last = args.Get(1).(*models.LastGuessResult)
	}
	return args.Get(0).(session.Snapshot), last, args.Error(2)
}

func (m *MockGameService) MakeGuess(ctx context.Context, playerID string, itemID int64) (session.Snapshot, *models.LastGuessResult, error) {
	args := m.Called(ctx, playerID, itemID)
	var last *models.LastGuessResult
	if args.Get(1) != nil {
		last = args.Get(1).(*models.LastGuessResult)
	}
	return args.Get(0).(session.Snapshot), last, args.Error(2)
}

func (m *MockGameService) UseHint(ctx context.Context, playerID string, category models.HintCategory) (models.HintState, error) {
	args := m.Called(ctx, playerID, category)
	return args.Get(0).(models.HintState), args.Error(1)
}

func (m *MockGameService) GiveUp(ctx context.Context, playerID string) (session.Snapshot, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockGameService) RevealComplete(ctx context.Context, playerID string) (session.Snapshot, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockGameService) RetrySave(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *MockGameService) ChangeDifficulty(ctx context.Context, playerID, level string) (session.Snapshot, error) {
	args := m.Called(ctx, playerID, level)
	return args.Get(0).(session.Snapshot), args.Error(1)
}

func (m *MockGameService) Stats(ctx context.Context, playerID string) (*models.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStats), args.Error(1)
}

func (m *MockGameService) History(ctx context.Context, filter models.HistoryFilter) ([]models.GameHistoryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameHistoryEntry), args.Error(1)
}

func (m *MockGameService) SearchItems(ctx context.Context, query string, limit int) ([]models.TriviaItem, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TriviaItem), args.Error(1)
}

func (m *MockGameService) SeenTip(ctx context.Context, playerID, tip string) (bool, error) {
	args := m.Called(ctx, playerID, tip)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameService) MarkTipSeen(ctx context.Context, playerID, tip string) error {
	args := m.Called(ctx, playerID, tip)
	return args.Error(0)
}

func newTestServer(svc *MockGameService) http.Handler {
	srv := &api.Server{GameService: svc, HistoryLimit: 30}
	return srv.Routes()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("X-Player-ID", "player-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func playingSnapshot() session.Snapshot {
	return session.Snapshot{
		Game: models.PlayerGame{
			ID:       "game-1",
			PlayerID: "player-1",
			Status:   models.StatusPlaying,
		},
	}
}

func TestMissingPlayerHeaderRejected(t *testing.T) {
	handler := newTestServer(new(MockGameService))

	req := httptest.NewRequest(http.MethodGet, "/api/game", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGame(t *testing.T) {
	svc := new(MockGameService)
	svc.On("Snapshot", mock.Anything, "player-1").
		Return(playingSnapshot(), &models.LastGuessResult{Correct: false, Feedback: "Not quite. Try again!"}, nil)

	rec := doRequest(t, newTestServer(svc), http.MethodGet, "/api/game", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Game      models.PlayerGame       `json:"game"`
		LastGuess *models.LastGuessResult `json:"last_guess"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "game-1", resp.Game.ID)
	require.NotNil(t, resp.LastGuess)
	assert.Equal(t, "Not quite. Try again!", resp.LastGuess.Feedback)
}

func TestHandleGuess_InvalidBody(t *testing.T) {
	rec := doRequest(t, newTestServer(new(MockGameService)), http.MethodPost, "/api/game/guess", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGuess_MissingItemID(t *testing.T) {
	rec := doRequest(t, newTestServer(new(MockGameService)), http.MethodPost, "/api/game/guess", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeValidation, resp.Error.Code)
}

func TestHandleGuess_SaveFailureStillReturnsState(t *testing.T) {
	svc := new(MockGameService)
	snap := playingSnapshot()
	snap.Game.Status = models.StatusRevealing
	snap.Game.CorrectAnswer = true
	snap.Score = 850
	svc.On("MakeGuess", mock.Anything, "player-1", int64(27205)).
		Return(snap, &models.LastGuessResult{Correct: true, Feedback: "You got it!"}, errors.NewSaveFailedError(assert.AnError))

	rec := doRequest(t, newTestServer(svc), http.MethodPost, "/api/game/guess", `{"item_id":27205}`)
	require.Equal(t, http.StatusOK, rec.Code, "a failed save never fails the guess")

	var resp struct {
		Score     int    `json:"score"`
		SaveError string `json:"save_error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 850, resp.Score)
	assert.NotEmpty(t, resp.SaveError)
}

func TestHandleChangeDifficulty_UnknownLevel(t *testing.T) {
	svc := new(MockGameService)
	svc.On("ChangeDifficulty", mock.Anything, "player-1", "LEVEL_42").
		Return(session.Snapshot{}, errors.NewValidationError("difficulty", "unknown level LEVEL_42"))

	rec := doRequest(t, newTestServer(svc), http.MethodPost, "/api/difficulty", `{"level":"LEVEL_42"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDifficulties(t *testing.T) {
	rec := doRequest(t, newTestServer(new(MockGameService)), http.MethodGet, "/api/difficulties", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var levels []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	assert.Len(t, levels, 5)
}

func TestHandleHistory_ClampsLimit(t *testing.T) {
	svc := new(MockGameService)
	svc.On("History", mock.Anything, models.HistoryFilter{PlayerID: "player-1", Limit: 30}).
		Return([]models.GameHistoryEntry{}, nil)

	// A requested limit above the configured cap falls back to the cap.
	rec := doRequest(t, newTestServer(svc), http.MethodGet, "/api/history?limit=500", "")
	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertCalled(t, "History", mock.Anything, models.HistoryFilter{PlayerID: "player-1", Limit: 30})
}

func TestHandleInternalErrorMapped(t *testing.T) {
	svc := new(MockGameService)
	svc.On("Stats", mock.Anything, "player-1").Return(nil, errors.NewInternalError(assert.AnError))

	rec := doRequest(t, newTestServer(svc), http.MethodGet, "/api/stats", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeInternal, resp.Error.Code)
}
