package storage

import (
	"fmt"
	"time"
)

// DefaultTopLimit is used when a caller asks for a non-positive limit.
const DefaultTopLimit = 10

// Result is one finished game as recorded on game over.
type Result struct {
	GameID    string
	Score     int
	Turns     int
	BestChain int
	Seed      int64
}

// ScoreEntry is a stored Result with its row ID and timestamp.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Turns     int
	BestChain int
	Seed      int64
	CreatedAt time.Time
}

const (
	insertResultSQL = `INSERT INTO scores (game_id, score, turns, best_chain, seed)
		VALUES (?, ?, ?, ?, ?)`

	// Ties keep the earlier run first.
	topScoresSQL = `SELECT id, game_id, score, turns, best_chain, seed, created_at
		FROM scores
		WHERE game_id = ?
		ORDER BY score DESC, id ASC
		LIMIT ?`

	clearScoresSQL = `DELETE FROM scores WHERE game_id = ?`
)

// SaveResult inserts r and returns its row ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(insertResultSQL, r.GameID, r.Score, r.Turns, r.BestChain, r.Seed)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read inserted id: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit results for gameID, best first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	rows, err := s.db.Query(topScoresSQL, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Turns, &e.BestChain, &e.Seed, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read scores: %w", err)
	}
	return entries, nil
}

// ClearScores deletes every result for gameID.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec(clearScoresSQL, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", gameID, err)
	}
	return nil
}
