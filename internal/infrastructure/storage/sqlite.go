// Package storage archives finished reconciliation runs in SQLite so
// past reports can be listed and re-fetched. The reconciliation core
// never reads from here; each run is stateless.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned by GetRun when no run exists with the
// requested ID.
var ErrRunNotFound = errors.New("run not found")

// Storage provides SQLite database access for archived runs. It
// implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun archives a finished reconciliation run.
func (s *Storage) SaveRun(run *ReconciliationRun) error {
	query := `
	INSERT INTO reconciliation_runs
	(id, created_at, reference_file, comparison_file,
	 total_reference, total_comparison, confirmed, divergent,
	 not_found, missing_info, daily_alerts, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.ID,
		run.CreatedAt,
		run.ReferenceFile,
		run.ComparisonFile,
		run.TotalReference,
		run.TotalComparison,
		run.Confirmed,
		run.Divergent,
		run.NotFound,
		run.MissingInfo,
		run.DailyAlerts,
		run.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID, report included.
func (s *Storage) GetRun(id string) (*ReconciliationRun, error) {
	query := `
	SELECT id, created_at, reference_file, comparison_file,
	       total_reference, total_comparison, confirmed, divergent,
	       not_found, missing_info, daily_alerts, report_json
	FROM reconciliation_runs WHERE id = ?
	`

	run := &ReconciliationRun{}
	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.CreatedAt,
		&run.ReferenceFile,
		&run.ComparisonFile,
		&run.TotalReference,
		&run.TotalComparison,
		&run.Confirmed,
		&run.Divergent,
		&run.NotFound,
		&run.MissingInfo,
		&run.DailyAlerts,
		&run.ReportJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. The report
// payload is left empty to keep listings light.
func (s *Storage) ListRuns(limit int) ([]*ReconciliationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, created_at, reference_file, comparison_file,
	       total_reference, total_comparison, confirmed, divergent,
	       not_found, missing_info, daily_alerts
	FROM reconciliation_runs
	ORDER BY created_at DESC
	LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []*ReconciliationRun
	for rows.Next() {
		run := &ReconciliationRun{}
		if err := rows.Scan(
			&run.ID,
			&run.CreatedAt,
			&run.ReferenceFile,
			&run.ComparisonFile,
			&run.TotalReference,
			&run.TotalComparison,
			&run.Confirmed,
			&run.Divergent,
			&run.NotFound,
			&run.MissingInfo,
			&run.DailyAlerts,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
