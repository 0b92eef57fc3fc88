package dto

import (
	"time"

	"github.com/Rannielson/analisefinanceiro/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse builds the canonical health payload.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RunResponse is one archived reconciliation run in API responses.
type RunResponse struct {
	ID              string `json:"id"`
	CreatedAt       string `json:"created_at"`
	ReferenceFile   string `json:"reference_file"`
	ComparisonFile  string `json:"comparison_file"`
	TotalReference  int    `json:"total_reference"`
	TotalComparison int    `json:"total_comparison"`
	Confirmed       int    `json:"confirmed"`
	Divergent       int    `json:"divergent"`
	NotFound        int    `json:"not_found"`
	MissingInfo     int    `json:"missing_info"`
	DailyAlerts     int    `json:"daily_alerts"`
}

// RunFromModel converts a stored run to its response form.
func RunFromModel(run *storage.ReconciliationRun) RunResponse {
	return RunResponse{
		ID:              run.ID,
		CreatedAt:       run.CreatedAt.UTC().Format(time.RFC3339),
		ReferenceFile:   run.ReferenceFile,
		ComparisonFile:  run.ComparisonFile,
		TotalReference:  run.TotalReference,
		TotalComparison: run.TotalComparison,
		Confirmed:       run.Confirmed,
		Divergent:       run.Divergent,
		NotFound:        run.NotFound,
		MissingInfo:     run.MissingInfo,
		DailyAlerts:     run.DailyAlerts,
	}
}

// RunListResponse wraps a page of archived runs.
type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}
