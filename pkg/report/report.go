// Package report records per-page conversion outcomes in a SQLite
// database when the run is started with --report-db.
package report

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Page statuses recorded in the pages table.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

type DB struct {
	*sql.DB
	path string
}

// openDB opens a SQLite database at the given path.
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the report database at path and initializes the
// schema if it does not exist yet.
func Open(path string) (*DB, error) {
	sqlDB, err := openDB(path)
	if err != nil {
		return nil, err
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// ensureSchemaExists checks for the pages table and initializes the schema
// when missing.
func (db *DB) ensureSchemaExists() error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='pages'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return db.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// InitSchema initializes the database schema.
func (db *DB) InitSchema() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

// StartRun inserts a run row and returns its id.
func (db *DB) StartRun(dumpFile, outputDir, format string) (int64, error) {
	res, err := db.Exec(
		"INSERT INTO runs (dump_file, output_dir, format) VALUES (?, ?, ?)",
		dumpFile, outputDir, format,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// RecordPage records one processed page's outcome.
func (db *DB) RecordPage(runID int64, title, outputPath, status, errMsg string) error {
	_, err := db.Exec(
		"INSERT INTO pages (run_id, title, output_path, status, error) VALUES (?, ?, ?, ?, ?)",
		runID, title, outputPath, status, errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page record: %w", err)
	}
	return nil
}

// FinishRun stamps the run as finished with its converted-file count.
func (db *DB) FinishRun(runID int64, converted int) error {
	_, err := db.Exec(
		"UPDATE runs SET finished_at = CURRENT_TIMESTAMP, converted = ? WHERE run_id = ?",
		converted, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// PageOutcome is one row of the pages table, as read back by reporting
// queries and tests.
type PageOutcome struct {
	Title      string
	OutputPath string
	Status     string
	Error      string
}

// RunPages returns the recorded outcomes for a run in insertion order.
func (db *DB) RunPages(runID int64) ([]PageOutcome, error) {
	rows, err := db.Query(
		"SELECT title, COALESCE(output_path, ''), status, COALESCE(error, '') FROM pages WHERE run_id = ? ORDER BY page_id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var out []PageOutcome
	for rows.Next() {
		var p PageOutcome
		if err := rows.Scan(&p.Title, &p.OutputPath, &p.Status, &p.Error); err != nil {
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
