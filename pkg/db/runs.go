package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded command invocation
type Run struct {
	RunID      int64     `yaml:"run_id"`
	CreatedAt  time.Time `yaml:"created_at"`
	Command    string    `yaml:"command"`
	InputPath  string    `yaml:"input_path"`
	OutputPath string    `yaml:"output_path"`
	EntryCount int       `yaml:"entry_count"`
}

// RunEntry is one ranked result of a run.
// Category is empty except for suffix-by-category runs.
type RunEntry struct {
	Rank     int     `yaml:"rank"`
	Key      string  `yaml:"key"`
	Category string  `yaml:"category,omitempty"`
	Count    float64 `yaml:"count"`
}

// CreateRun inserts a run and returns its ID
func (db *DB) CreateRun(command, inputPath, outputPath string, entryCount int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (command, input_path, output_path, entry_count)
		VALUES (?, ?, ?, ?)
	`, command, inputPath, outputPath, entryCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// InsertEntries stores the ranked entries of a run in one transaction
func (db *DB) InsertEntries(runID int64, entries []RunEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	stmt, err := tx.Prepare(`
		INSERT INTO run_entries (run_id, rank, key, category, count)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(runID, e.Rank, e.Key, e.Category, e.Count); err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (db *DB) GetRun(runID int64) (*Run, error) {
	var r Run
	var output sql.NullString
	err := db.QueryRow(`
		SELECT run_id, created_at, command, input_path, output_path, entry_count
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.Command, &r.InputPath, &output, &r.EntryCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	r.OutputPath = output.String
	return &r, nil
}

// GetRunEntries retrieves the entries of a run in rank order
func (db *DB) GetRunEntries(runID int64) ([]RunEntry, error) {
	rows, err := db.Query(`
		SELECT rank, key, category, count
		FROM run_entries
		WHERE run_id = ?
		ORDER BY rank, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run entries: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		if err := rows.Scan(&e.Rank, &e.Key, &e.Category, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListRuns lists runs, newest first. A limit of 0 lists all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, command, input_path, output_path, entry_count
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var output sql.NullString
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Command, &r.InputPath, &output, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.OutputPath = output.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRunID returns the most recent run ID
func (db *DB) LatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&runID)
	if err == sql.ErrNoRows {
		return 0, ErrRunNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}
