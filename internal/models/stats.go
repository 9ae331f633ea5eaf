package models

// WinHistogramSize bounds the wins-by-guess-number histogram. It covers the
// largest GuessesMax any difficulty tier configures, with headroom.
const WinHistogramSize = 10

// PlayerStats is the cross-session aggregate for one player. It is mutated
// only by the game-over orchestrator and by hint spending during play.
type PlayerStats struct {
	PlayerID       string                 `json:"player_id"`
	GamesPlayed    int                    `json:"games_played"`
	CurrentStreak  int                    `json:"current_streak"`
	MaxStreak      int                    `json:"max_streak"`
	Wins           [WinHistogramSize]int  `json:"wins"`
	AllTimeScore   int                    `json:"all_time_score"`
	HintPoints     int                    `json:"hint_points"`
	HintsUsedTotal int                    `json:"hints_used_total"`
}
