package persist

import (
	"context"
	"time"
)

// ScoreRow represents a row from the scores table.
type ScoreRow struct {
	ID        int64
	Player    string
	Score     int64
	Level     int32
	CreatedAt time.Time
}

// ScoreRepo handles all leaderboard database operations.
type ScoreRepo struct {
	db *DB
}

func NewScoreRepo(db *DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Save records a finished session's result and returns the new row ID.
func (r *ScoreRepo) Save(ctx context.Context, player string, score int64, level int32) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO scores (player, score, level)
		 VALUES ($1, $2, $3) RETURNING id`,
		player, score, level,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Top returns the highest scores, best first.
func (r *ScoreRepo) Top(ctx context.Context, limit int) ([]ScoreRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, player, score, level, created_at
		 FROM scores ORDER BY score DESC, created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []ScoreRow
	for rows.Next() {
		var s ScoreRow
		if err := rows.Scan(&s.ID, &s.Player, &s.Score, &s.Level, &s.CreatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
