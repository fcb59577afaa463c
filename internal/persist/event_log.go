package persist

import (
	"context"
	"fmt"
)

// EventEntry is one gameplay event queued for the session log. Entries
// accumulate in memory during play and flush in batches, so a tick
// never blocks on the database.
type EventEntry struct {
	Session int64
	Kind    string // "dot", "pill", "ghost_eaten", "life_lost", "level_cleared"
	Level   int32
	Detail  string
}

type EventLogRepo struct {
	db *DB
}

func NewEventLogRepo(db *DB) *EventLogRepo {
	return &EventLogRepo{db: db}
}

// WriteBatch atomically writes a batch of entries in a single
// transaction. On failure the caller keeps the batch and retries on
// the next flush.
func (r *EventLogRepo) WriteBatch(ctx context.Context, entries []EventEntry) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("event log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO session_events (session, kind, level, detail)
			 VALUES ($1, $2, $3, $4)`,
			e.Session, e.Kind, e.Level, e.Detail,
		); err != nil {
			return fmt.Errorf("event log insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
