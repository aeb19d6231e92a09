package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Owner identifies who a game row belongs to: a user or an anonymous cookie.
type Owner struct {
	UserID      string
	AnonymousID string
}

func (o Owner) clause() (string, any) {
	if o.UserID != "" {
		return "user_id=?", o.UserID
	}
	return "anonymous_id=?", o.AnonymousID
}

// GameRecord is the summary row kept for a ladder game.
type GameRecord struct {
	ID           string     `json:"id"`
	Start        string     `json:"start"`
	Target       string     `json:"target"`
	Difficulty   string     `json:"difficulty"`
	Strategy     string     `json:"strategy"`
	OptimalMoves int        `json:"optimalMoves"`
	Moves        int        `json:"moves"`
	Hints        int        `json:"hints"`
	Score        int        `json:"score"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"startedAt"`
	FinishedAt   *time.Time `json:"finishedAt,omitempty"`
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// RecordGame inserts the row for a newly started game and, for signed-in
// owners, counts it toward games played.
func (s *Store) RecordGame(ctx context.Context, o Owner, g GameRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, user_id, anonymous_id, start_word, target_word, difficulty,
		                   strategy, optimal_moves, status, started_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		g.ID, nullable(o.UserID), nullable(o.AnonymousID), g.Start, g.Target, g.Difficulty,
		g.Strategy, g.OptimalMoves, "playing", g.StartedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if o.UserID != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET games_played = games_played + 1 WHERE id=?`, o.UserID); err != nil {
			return fmt.Errorf("count game: %w", err)
		}
	}
	return tx.Commit()
}

// FinishGame marks a game won and, for signed-in owners, bumps profile counters
// in the same transaction.
func (s *Store) FinishGame(ctx context.Context, o Owner, g GameRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	where, arg := o.clause()
	res, err := tx.ExecContext(ctx, `
		UPDATE games SET moves=?, hints=?, score=?, strategy=?, status='won', finished_at=?
		WHERE id=? AND `+where,
		g.Moves, g.Hints, g.Score, g.Strategy, time.Now().UTC().Format(time.RFC3339), g.ID, arg)
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if o.UserID != "" {
		if err := bumpStats(ctx, tx, o.UserID, g.Score); err != nil {
			return fmt.Errorf("bump stats: %w", err)
		}
	}
	return tx.Commit()
}

// bumpStats counts a win and keeps the best score.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, score int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE users
		SET wins = wins + 1,
		    best_score = MAX(best_score, ?)
		WHERE id=?`, score, userID)
	return err
}

// ClaimAnonymous transfers anonymous game rows to userID after signup or login.
// The claimed games are added to the user's counters.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE users
		SET games_played = games_played + (SELECT COUNT(1) FROM games WHERE anonymous_id=?),
		    wins = wins + (SELECT COUNT(1) FROM games WHERE anonymous_id=? AND status='won'),
		    best_score = MAX(best_score,
		        COALESCE((SELECT MAX(score) FROM games WHERE anonymous_id=? AND status='won'), 0))
		WHERE id=?`, anonID, anonID, anonID, userID); err != nil {
		return 0, fmt.Errorf("claim stats: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// RecentGames lists the newest games of userID, at most limit (default 50).
func (s *Store) RecentGames(ctx context.Context, userID string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_word, target_word, difficulty, strategy, optimal_moves,
		       moves, hints, score, status, started_at, COALESCE(finished_at, '')
		FROM games WHERE user_id=?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRecord{}
	for rows.Next() {
		var g GameRecord
		var started, finished string
		if err := rows.Scan(&g.ID, &g.Start, &g.Target, &g.Difficulty, &g.Strategy, &g.OptimalMoves,
			&g.Moves, &g.Hints, &g.Score, &g.Status, &started, &finished); err != nil {
			return nil, err
		}
		g.StartedAt, _ = time.Parse(time.RFC3339, started)
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			g.FinishedAt = &t
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
