package storage

import "time"

// ReconciliationRun is one archived reconciliation: the input file
// names, the headline counts and the serialized report. Archiving is
// purely additive; a run's outcome never depends on previous runs.
type ReconciliationRun struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	ReferenceFile   string    `json:"reference_file"`
	ComparisonFile  string    `json:"comparison_file"`
	TotalReference  int       `json:"total_reference"`
	TotalComparison int       `json:"total_comparison"`
	Confirmed       int       `json:"confirmed"`
	Divergent       int       `json:"divergent"`
	NotFound        int       `json:"not_found"`
	MissingInfo     int       `json:"missing_info"`
	DailyAlerts     int       `json:"daily_alerts"`
	ReportJSON      string    `json:"-"`
}
