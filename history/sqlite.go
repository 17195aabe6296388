package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps run history in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore initializes the SQLite database connection.
// It enables WAL mode for concurrency and durability.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("history: sqlite path required")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS validation_runs (
		id TEXT PRIMARY KEY,
		diagram_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		component_count INTEGER NOT NULL,
		completed_at DATETIME NOT NULL
	);

	-- Index for the per-diagram newest-first read path
	CREATE INDEX IF NOT EXISTS idx_validation_runs_diagram ON validation_runs(diagram_id, completed_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create validation_runs table: %w", err)
	}

	return nil
}

// RecordRun implements Store.
func (s *SQLiteStore) RecordRun(ctx context.Context, run Run) error {
	if run.DiagramID == "" {
		return ErrInvalidRun
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO validation_runs (id, diagram_id, score, component_count, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.DiagramID, run.Score, run.ComponentCount, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run for diagram %s: %w", run.DiagramID, err)
	}

	return nil
}

// RecentRuns implements Store.
func (s *SQLiteStore) RecentRuns(ctx context.Context, diagramID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, diagram_id, score, component_count, completed_at
		 FROM validation_runs
		 WHERE diagram_id = ?
		 ORDER BY completed_at DESC, rowid DESC
		 LIMIT ?`,
		diagramID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for diagram %s: %w", diagramID, err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.DiagramID, &run.Score, &run.ComponentCount, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run rows: %w", err)
	}

	return runs, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
