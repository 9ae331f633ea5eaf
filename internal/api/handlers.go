package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unrealities/talkie-trivia-sub000/internal/difficulty"
	"github.com/unrealities/talkie-trivia-sub000/internal/errors"
	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

type gameResponse struct {
	Game       models.PlayerGame       `json:"game"`
	Stats      models.PlayerStats      `json:"stats"`
	HintState  models.HintState        `json:"hint_state"`
	Score      int                     `json:"score"`
	LastGuess  *models.LastGuessResult `json:"last_guess,omitempty"`
	SaveError  string                  `json:"save_error,omitempty"`
	GameStatus models.GameStatus       `json:"game_status"`
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	snap, last, err := s.GameService.Snapshot(r.Context(), playerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{
		Game:       snap.Game,
		Stats:      snap.Stats,
		HintState:  snap.HintState,
		Score:      snap.Score,
		LastGuess:  last,
		GameStatus: snap.Game.Status,
	})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.ItemID == 0 {
		handleError(w, r, errors.NewValidationError("item_id", "must be set"))
		return
	}

	snap, last, err := s.GameService.MakeGuess(r.Context(), playerID, req.ItemID)
	if err != nil {
		// A failed game-over save is non-fatal: the guess stands and the
		// updated state ships with the error message.
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeSaveFailed {
			writeJSON(w, http.StatusOK, gameResponse{
				Game:       snap.Game,
				Stats:      snap.Stats,
				HintState:  snap.HintState,
				Score:      snap.Score,
				LastGuess:  last,
				SaveError:  appErr.Message,
				GameStatus: snap.Game.Status,
			})
			return
		}
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{
		Game:       snap.Game,
		Stats:      snap.Stats,
		HintState:  snap.HintState,
		Score:      snap.Score,
		LastGuess:  last,
		GameStatus: snap.Game.Status,
	})
}

func (s *Server) handleUseHint(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())
	category := models.HintCategory(chi.URLParam(r, "category"))

	state, err := s.GameService.UseHint(r.Context(), playerID, category)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	snap, err := s.GameService.GiveUp(r.Context(), playerID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.ErrCodeSaveFailed {
			handleError(w, r, err)
			return
		}
	}
	resp := gameResponse{
		Game:       snap.Game,
		Stats:      snap.Stats,
		HintState:  snap.HintState,
		Score:      snap.Score,
		GameStatus: snap.Game.Status,
	}
	if err != nil {
		resp.SaveError = err.(*errors.AppError).Message
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevealComplete(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	snap, err := s.GameService.RevealComplete(r.Context(), playerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_status": snap.Game.Status})
}

func (s *Server) handleRetrySave(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	if err := s.GameService.RetrySave(r.Context(), playerID); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (s *Server) handleChangeDifficulty(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	var req struct {
		Level string `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	snap, err := s.GameService.ChangeDifficulty(r.Context(), playerID, req.Level)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{
		Game:       snap.Game,
		Stats:      snap.Stats,
		HintState:  snap.HintState,
		Score:      snap.Score,
		GameStatus: snap.Game.Status,
	})
}

func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, difficulty.Levels())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	stats, err := s.GameService.Stats(r.Context(), playerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	filter := models.HistoryFilter{
		PlayerID:   playerID,
		Difficulty: r.URL.Query().Get("difficulty"),
		OnlyWins:   r.URL.Query().Get("wins") == "true",
		Limit:      s.HistoryLimit,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= s.HistoryLimit {
			filter.Limit = n
		}
	}

	entries, err := s.GameService.History(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.GameHistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSeenTip(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())
	tip := chi.URLParam(r, "tip")

	seen, err := s.GameService.SeenTip(r.Context(), playerID, tip)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tip": tip, "seen": seen})
}

func (s *Server) handleMarkTipSeen(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())
	tip := chi.URLParam(r, "tip")

	if err := s.GameService.MarkTipSeen(r.Context(), playerID, tip); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tip": tip, "seen": true})
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	items, err := s.GameService.SearchItems(r.Context(), query, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if items == nil {
		items = []models.TriviaItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
