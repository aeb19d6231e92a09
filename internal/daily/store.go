package daily

import (
	"context"
	"database/sql"
)

// Result is a finished daily ladder.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	Target    string `json:"target"`
	Moves     int    `json:"moves"`
	Hints     int    `json:"hints"`
	Score     int    `json:"score"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store persists daily results; each user has at most one row per date.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r. A second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results
		    (user_id, date, start_word, target_word, moves, hints, score, elapsed_ms)
		 VALUES (?,?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.Start, r.Target, r.Moves, r.Hints, r.Score, r.ElapsedMs,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LBRow is one leaderboard entry. Guests show up as "guest".
type LBRow struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Moves     int    `json:"moves"`
	Hints     int    `json:"hints"`
	Score     int    `json:"score"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard returns the best results for date: fewest moves, then fewest
// hints, then fastest, then earliest. limit <= 0 means 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.user_id, COALESCE(u.username, 'guest'), d.moves, d.hints, d.score, d.elapsed_ms
		 FROM daily_results d
		 LEFT JOIN users u ON u.id = d.user_id
		 WHERE d.date=?
		 ORDER BY d.moves ASC, d.hints ASC, d.elapsed_ms ASC, d.created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		r := LBRow{Rank: len(out) + 1}
		if err := rows.Scan(&r.UserID, &r.Username, &r.Moves, &r.Hints, &r.Score, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
