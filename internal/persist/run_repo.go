package persist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RunRecord is the summary of one finished play session.
type RunRecord struct {
	ID        uuid.UUID
	Game      string
	Score     int
	Kills     int
	Waves     int
	Ticks     uint64
	Reason    string // why the run ended: "player died", "tick limit", "interrupted"
	StartedAt time.Time
	EndedAt   time.Time
	KillsBy   map[string]int // enemy kind -> kills
	Seal      []byte
}

// RunRepo reads and writes run records. Get one from DB.Runs.
type RunRepo struct {
	db *DB
}

// Save stores rec and its per-kind kill counts in one transaction.
func (r *RunRepo) Save(ctx context.Context, rec RunRecord) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save run begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO runs (id, game, score, kills, waves, ticks, reason, started_at, ended_at, seal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.Game, rec.Score, rec.Kills, rec.Waves, int64(rec.Ticks), rec.Reason,
		rec.StartedAt, rec.EndedAt, rec.Seal,
	); err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}

	kinds := make([]string, 0, len(rec.KillsBy))
	for k := range rec.KillsBy {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_kills (run_id, kind, count) VALUES ($1, $2, $3)`,
			rec.ID, kind, rec.KillsBy[kind],
		); err != nil {
			return fmt.Errorf("save run %s kills: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save run commit: %w", err)
	}
	r.db.log.Debug("run saved", rec.logFields()...)
	return nil
}

// Load returns the run with the given id, or nil if there is none.
func (r *RunRepo) Load(ctx context.Context, id uuid.UUID) (*RunRecord, error) {
	rec := &RunRecord{}
	var ticks int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, game, score, kills, waves, ticks, reason, started_at, ended_at, seal
		 FROM runs WHERE id = $1`, id,
	).Scan(
		&rec.ID, &rec.Game, &rec.Score, &rec.Kills, &rec.Waves, &ticks, &rec.Reason,
		&rec.StartedAt, &rec.EndedAt, &rec.Seal,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	rec.Ticks = uint64(ticks)

	if rec.KillsBy, err = r.loadKills(ctx, id); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RunRepo) loadKills(ctx context.Context, id uuid.UUID) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT kind, count FROM run_kills WHERE run_id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("load run %s kills: %w", id, err)
	}
	defer rows.Close()

	kills := make(map[string]int)
	for rows.Next() {
		var (
			kind  string
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		kills[kind] = count
	}
	return kills, rows.Err()
}

// Top returns the n best runs by score, earlier runs first on ties. Kill
// breakdowns are not loaded.
func (r *RunRepo) Top(ctx context.Context, n int) ([]RunRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, game, score, kills, waves, ticks, reason, started_at, ended_at, seal
		 FROM runs ORDER BY score DESC, ended_at ASC LIMIT $1`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("top runs: %w", err)
	}
	defer rows.Close()

	var result []RunRecord
	for rows.Next() {
		var (
			rec   RunRecord
			ticks int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Game, &rec.Score, &rec.Kills, &rec.Waves, &ticks, &rec.Reason,
			&rec.StartedAt, &rec.EndedAt, &rec.Seal,
		); err != nil {
			return nil, err
		}
		rec.Ticks = uint64(ticks)
		result = append(result, rec)
	}
	return result, rows.Err()
}
