package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

type gameJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type scoreJSON struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	Turns     int       `json:"turns"`
	BestChain int       `json:"best_chain"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

type statsJSON struct {
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	BestChain  int       `json:"best_chain"`
	LastPlayed time.Time `json:"last_played"`
}

type scoresResponse struct {
	Game   string      `json:"game"`
	Scores []scoreJSON `json:"scores"`
	Stats  *statsJSON  `json:"stats,omitempty"`
}

type coordJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type hintJSON struct {
	A coordJSON `json:"a"`
	B coordJSON `json:"b"`
}

type boardResponse struct {
	Seed   int64     `json:"seed"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Rows   []string  `json:"rows"`
	Hint   *hintJSON `json:"hint"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]gameJSON, len(games))
	for i, g := range games {
		out[i] = gameJSON{ID: g.ID, Title: g.Title}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		writeError(w, http.StatusNotFound, "unknown game")
		return
	}
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "scores database unavailable")
		return
	}

	limit := DefaultScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxScoreLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := s.scores.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "game", gameID, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}

	resp := scoresResponse{Game: gameID, Scores: make([]scoreJSON, len(entries))}
	for i, e := range entries {
		resp.Scores[i] = scoreJSON{
			Rank:      i + 1,
			Score:     e.Score,
			Turns:     e.Turns,
			BestChain: e.BestChain,
			Seed:      e.Seed,
			CreatedAt: e.CreatedAt,
		}
	}
	if st, err := s.scores.GetGameStats(gameID); err == nil {
		resp.Stats = newStatsJSON(st)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStats returns totals keyed by mode ID. Modes never played are
// omitted.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "scores database unavailable")
		return
	}
	all, err := s.scores.GetAllGamesStats()
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}

	out := make(map[string]*statsJSON, len(all))
	for id, st := range all {
		out[id] = newStatsJSON(st)
	}
	writeJSON(w, http.StatusOK, out)
}

func newStatsJSON(st *storage.GameStats) *statsJSON {
	return &statsJSON{
		Games:      st.GamesCount,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		BestChain:  st.BestChain,
		LastPlayed: st.LastPlayed,
	}
}

// handleBoard returns the start board a game seeded with {seed} would use,
// along with the first available hint.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	seed, err := strconv.ParseInt(chi.URLParam(r, "seed"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "seed must be an integer")
		return
	}

	width, ok := sizeParam(r, "width", board.DefaultWidth)
	if !ok {
		writeError(w, http.StatusBadRequest, "width out of range")
		return
	}
	height, ok := sizeParam(r, "height", board.DefaultHeight)
	if !ok {
		writeError(w, http.StatusBadRequest, "height out of range")
		return
	}

	b := match3.NewPlayableBoard(width, height, seed)
	resp := boardResponse{
		Seed:   seed,
		Width:  b.Width(),
		Height: b.Height(),
		Rows:   b.Rows(),
	}
	if a, c, ok := b.FindAnySwap(); ok {
		resp.Hint = &hintJSON{A: coordJSON{a.X, a.Y}, B: coordJSON{c.X, c.Y}}
	}
	writeJSON(w, http.StatusOK, resp)
}

func sizeParam(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < config.MinBoardSize || n > config.MaxBoardSize {
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
