package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for
// testing. It keeps runs in a map so handler tests stay fast and
// isolated from SQLite.
type MockRepository struct {
	runs map[string]*ReconciliationRun

	// Hooks for test assertions
	SaveRunCalled bool
	LastSavedRun  *ReconciliationRun

	// Error injection for testing error paths
	SaveRunErr  error
	GetRunErr   error
	ListRunsErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs: make(map[string]*ReconciliationRun),
	}
}

// SaveRun stores the run in memory.
func (m *MockRepository) SaveRun(run *ReconciliationRun) error {
	m.SaveRunCalled = true
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}
	copied := *run
	m.runs[run.ID] = &copied
	m.LastSavedRun = &copied
	return nil
}

// GetRun returns a stored run or ErrRunNotFound.
func (m *MockRepository) GetRun(id string) (*ReconciliationRun, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	run, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	copied := *run
	return &copied, nil
}

// ListRuns returns stored runs newest first, without report payloads.
func (m *MockRepository) ListRuns(limit int) ([]*ReconciliationRun, error) {
	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}
	if limit <= 0 {
		limit = 50
	}

	runs := make([]*ReconciliationRun, 0, len(m.runs))
	for _, run := range m.runs {
		copied := *run
		copied.ReportJSON = ""
		runs = append(runs, &copied)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close is a no-op for the mock.
func (m *MockRepository) Close() error {
	return nil
}
