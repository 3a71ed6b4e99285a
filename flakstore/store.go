// Package flakstore is the out-of-scope "enclosing game's battle-list...
// score/experience accounting" persistence collaborator: a narrow
// repository that stores the final per-unit outcome of a completed battle,
// keyed by a generated battle UUID, in Postgres.
package flakstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flak-sim/flak/engine"
)

// Schema is the DDL flakstore expects to already exist. It is exported as
// a string rather than wired into a migration tool, the way
// Knoblauchpilze-sogserver's own DB package leaves schema management to
// the caller and only owns the query surface.
const Schema = `
CREATE TABLE IF NOT EXISTS flak_battle_results (
	battle_id     uuid NOT NULL,
	unit_index    integer NOT NULL,
	unit_id       integer NOT NULL,
	owner         integer NOT NULL,
	ending_status integer NOT NULL,
	PRIMARY KEY (battle_id, unit_index)
);
`

// Store is a pgxpool-backed repository for battle results.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn (a standard Postgres connection string) and returns
// a ready Store. Callers own calling Close.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("flakstore: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("flakstore: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// SaveResults persists results under a freshly generated battle UUID and
// returns it. The rows are sent as a single batch, matching the pattern of
// Knoblauchpilze-sogserver's DB wrapper: one round trip per logical write.
func (s *Store) SaveResults(ctx context.Context, results []engine.UnitResult) (uuid.UUID, error) {
	battleID := uuid.New()

	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(
			`INSERT INTO flak_battle_results (battle_id, unit_index, unit_id, owner, ending_status)
			 VALUES ($1, $2, $3, $4, $5)`,
			battleID, r.Index, r.ID, r.Owner, r.EndingStatus,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range results {
		if _, err := br.Exec(); err != nil {
			return uuid.Nil, fmt.Errorf("flakstore: save result row: %w", err)
		}
	}
	return battleID, nil
}

// Results loads every unit result previously saved under battleID, ordered
// by unit index.
func (s *Store) Results(ctx context.Context, battleID uuid.UUID) ([]engine.UnitResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT unit_index, unit_id, owner, ending_status
		 FROM flak_battle_results
		 WHERE battle_id = $1
		 ORDER BY unit_index`,
		battleID,
	)
	if err != nil {
		return nil, fmt.Errorf("flakstore: query results: %w", err)
	}
	defer rows.Close()

	var out []engine.UnitResult
	for rows.Next() {
		var r engine.UnitResult
		if err := rows.Scan(&r.Index, &r.ID, &r.Owner, &r.EndingStatus); err != nil {
			return nil, fmt.Errorf("flakstore: scan result row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flakstore: iterate results: %w", err)
	}
	return out, nil
}
