package storage

// Repository defines the run-archive storage interface. It exists so
// handlers can be tested against a mock and the backing store swapped
// without touching the API layer.
type Repository interface {
	// SaveRun archives a finished reconciliation run.
	SaveRun(run *ReconciliationRun) error

	// GetRun retrieves a run, including its full report, by ID.
	GetRun(id string) (*ReconciliationRun, error)

	// ListRuns returns the most recent runs, newest first, without
	// report payloads.
	ListRuns(limit int) ([]*ReconciliationRun, error)

	Close() error
}
