package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unrealities/talkie-trivia-sub000/internal/services"
)

// Server holds the service dependencies for the HTTP layer.
type Server struct {
	GameService  services.GameService
	HistoryLimit int
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(playerMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/game", s.handleGame)
		r.Post("/game/guess", s.handleGuess)
		r.Post("/game/hints/{category}", s.handleUseHint)
		r.Post("/game/giveup", s.handleGiveUp)
		r.Post("/game/reveal-complete", s.handleRevealComplete)
		r.Post("/game/retry-save", s.handleRetrySave)
		r.Post("/difficulty", s.handleChangeDifficulty)
		r.Get("/difficulties", s.handleDifficulties)
		r.Get("/stats", s.handleStats)
		r.Get("/history", s.handleHistory)
		r.Get("/items", s.handleSearchItems)
		r.Get("/tips/{tip}", s.handleSeenTip)
		r.Post("/tips/{tip}", s.handleMarkTipSeen)
	})

	return r
}
