// Package postgres provides a PostgreSQL-backed run store. It uses pgx/v5
// for connection pooling and JSONB for the assignment map.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skoenig/rubric/pkg/classify"
	"github.com/skoenig/rubric/pkg/storage"
)

// Store is a PostgreSQL-backed run store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements classify.RunStore at compile time.
var _ classify.RunStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// SaveRun persists a completed classification run.
func (s *Store) SaveRun(ctx context.Context, run *classify.Run) error {
	assignmentsJSON, err := json.Marshal(run.Assignments)
	if err != nil {
		return fmt.Errorf("marshaling assignments: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO runs (
			id, model, assignments,
			item_count, defaulted_count, batch_count,
			started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		run.ID, run.Model, assignmentsJSON,
		run.Stats.Items, run.Stats.Defaulted, run.Stats.Batches,
		run.StartedAt, run.CompletedAt,
	)

	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID. Returns ErrNotFound if it does not exist.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*classify.Run, error) {
	var run classify.Run
	var assignmentsJSON []byte

	err := s.pool.QueryRow(ctx, `
		SELECT id, model, assignments,
		       item_count, defaulted_count, batch_count,
		       started_at, completed_at
		FROM runs
		WHERE id = $1
	`, id).Scan(
		&run.ID, &run.Model, &assignmentsJSON,
		&run.Stats.Items, &run.Stats.Defaulted, &run.Stats.Batches,
		&run.StartedAt, &run.CompletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}

	if err := json.Unmarshal(assignmentsJSON, &run.Assignments); err != nil {
		return nil, fmt.Errorf("unmarshaling assignments: %w", err)
	}

	return &run, nil
}

// ListRuns returns up to limit runs, newest first by start time. A limit
// of zero or less returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*classify.Run, error) {
	query := `
		SELECT id, model, assignments,
		       item_count, defaulted_count, batch_count,
		       started_at, completed_at
		FROM runs
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*classify.Run
	for rows.Next() {
		var run classify.Run
		var assignmentsJSON []byte
		if err := rows.Scan(
			&run.ID, &run.Model, &assignmentsJSON,
			&run.Stats.Items, &run.Stats.Defaulted, &run.Stats.Batches,
			&run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal(assignmentsJSON, &run.Assignments); err != nil {
			return nil, fmt.Errorf("unmarshaling assignments: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run. Returns ErrNotFound if it does not exist.
func (s *Store) DeleteRun(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, "DELETE FROM runs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
