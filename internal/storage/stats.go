package storage

import (
	"fmt"
	"time"
)

// GameStats aggregates every stored result of one mode.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestChain  int
	LastPlayed time.Time
}

const sqliteTime = "2006-01-02 15:04:05"

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(score), 0), COALESCE(MAX(best_chain), 0), MAX(created_at)`

var (
	gameStatsSQL = `SELECT ` + statsColumns + ` FROM scores WHERE game_id = ?`
	allStatsSQL  = `SELECT game_id, ` + statsColumns + ` FROM scores GROUP BY game_id`
)

type scanner interface {
	Scan(dest ...any) error
}

// scanStats reads statsColumns, optionally preceded by the extra columns.
func scanStats(row scanner, st *GameStats, extra ...any) error {
	var last any
	dest := append(extra, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &st.BestChain, &last)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	st.LastPlayed = parseTime(last)
	return nil
}

// GetGameStats aggregates gameID. A mode with no results yields zero
// stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	if err := scanStats(s.db.QueryRow(gameStatsSQL, gameID), st); err != nil {
		return nil, fmt.Errorf("storage: cannot get stats for %s: %w", gameID, err)
	}
	return st, nil
}

// GetAllGamesStats aggregates every mode that has at least one result.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(allStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		st := &GameStats{}
		if err := scanStats(rows, st, &st.GameID); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		all[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read stats: %w", err)
	}
	return all, nil
}

// parseTime accepts the driver's time.Time or SQLite's text datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{sqliteTime, time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
