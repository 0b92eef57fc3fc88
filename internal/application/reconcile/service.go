// Package reconcile runs the full reconciliation pipeline: record
// normalization, both matching policies, the divergence checks, and
// the assembly of the final report.
//
// A run is synchronous, stateless and fully determined by its two
// input row sets; concurrent runs share nothing.
package reconcile

import (
	"log/slog"

	"github.com/Rannielson/analisefinanceiro/internal/domain/auditor"
	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
	"github.com/Rannielson/analisefinanceiro/internal/domain/matcher"
)

// Config holds per-run parameters.
type Config struct {
	// ReferenceYear disambiguates DD/MM-only dates. Zero means the
	// current year.
	ReferenceYear int

	// Tolerance is the maximum amount difference treated as a value
	// match. Zero means the one-cent default.
	Tolerance float64
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		ReferenceYear: 2026,
		Tolerance:     0.01,
	}
}

// Service runs reconciliations. Safe for concurrent use: each Run
// operates only on its own inputs.
type Service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService creates a reconciliation service.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = 0.01
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Run reconciles the reference rows against the comparison rows and
// returns the full report. It never fails: malformed cell data
// degrades during normalization and surfaces as statuses and alerts.
func (s *Service) Run(referenceRows, comparisonRows []ledger.RawRow) *Report {
	reference := ledger.Build(referenceRows, s.cfg.ReferenceYear)
	comparison := ledger.Build(comparisonRows, s.cfg.ReferenceYear)

	mcfg := matcher.Config{Tolerance: s.cfg.Tolerance, Selector: matcher.FirstFit{}}
	valueDate := matcher.New(mcfg).Run(reference, comparison)
	costCenter := matcher.NewCostCenter(mcfg).Run(reference, comparison)

	missing := auditor.CheckMissingInfo(reference)
	dailyAlerts := auditor.CheckDailyAlerts(reference, comparison, s.cfg.ReferenceYear)
	if dailyAlerts == nil {
		dailyAlerts = []auditor.DailyAlert{}
	}
	dayGroups := auditor.GroupByDate(reference, comparison, s.cfg.ReferenceYear)

	// Combined flat list: match results in reference order, then the
	// missing-info entries.
	results := make([]ResultItem, 0, len(valueDate)+len(missing))
	for _, r := range valueDate {
		results = append(results, toItem(r))
	}
	for _, m := range missing {
		results = append(results, missingItem(m))
	}

	ccResults := make([]ResultItem, 0, len(costCenter))
	for _, r := range costCenter {
		ccResults = append(ccResults, toItem(r))
	}

	report := &Report{
		Summary:     summarize(valueDate, len(reference), len(comparison), len(missing), len(dailyAlerts)),
		Results:     results,
		DailyAlerts: dailyAlerts,
		ByDay:       bindByDay(dayGroups, results),
		CostCenter: Analysis{
			Summary: summarize(costCenter, len(reference), len(comparison), 0, len(dailyAlerts)),
			Results: ccResults,
			ByDay:   bindByDay(dayGroups, ccResults),
		},
	}

	s.logger.Info("reconciliation finished",
		"reference", len(reference),
		"comparison", len(comparison),
		"ok", report.Summary.ConfirmedMatches,
		"divergent", report.Summary.Divergent,
		"not_found", report.Summary.NotFound,
		"missing_info", report.Summary.MissingInfo,
		"daily_alerts", len(dailyAlerts),
	)

	return report
}

func toItem(r matcher.MatchResult) ResultItem {
	item := ResultItem{
		Status:     r.Status,
		Reference:  viewOf(r.Reference),
		NameScore:  r.NameSimilarity,
		AmountDiff: r.AmountDiff,
		Alert:      r.Alert,
	}
	if r.Comparison != nil {
		v := viewOf(*r.Comparison)
		item.Comparison = &v
	}
	return item
}

func missingItem(m auditor.MissingInfo) ResultItem {
	return ResultItem{
		Status:    auditor.StatusMissingInfo,
		Reference: viewOf(m.Reference),
		Alert:     m.Alert,
	}
}

func summarize(results []matcher.MatchResult, totalRef, totalComp, missing, dailyAlerts int) Summary {
	s := Summary{
		TotalReference:   totalRef,
		TotalComparison:  totalComp,
		MissingInfo:      missing,
		TotalDailyAlerts: dailyAlerts,
	}
	for _, r := range results {
		switch r.Status {
		case matcher.StatusOK:
			s.ConfirmedMatches++
		case matcher.StatusDivergent:
			s.Divergent++
		case matcher.StatusNotFound:
			s.NotFound++
		}
	}
	return s
}

// bindByDay attaches each result to its day group by the reference
// record's display date. Items whose date has no group (empty or
// unmatched) stay only in the flat list.
func bindByDay(groups []auditor.DayGroup, results []ResultItem) []DayGroupView {
	index := make(map[string]int, len(groups))
	views := make([]DayGroupView, 0, len(groups))
	for i, g := range groups {
		index[g.Date] = i
		views = append(views, DayGroupView{
			Date:      g.Date,
			RefCount:  g.RefCount,
			CompCount: g.CompCount,
			RefTotal:  g.RefTotal,
			CompTotal: g.CompTotal,
			Divergent: g.Divergent,
			Results:   []ResultItem{},
		})
	}

	for _, item := range results {
		if item.Reference.Date == "" {
			continue
		}
		if i, ok := index[item.Reference.Date]; ok {
			views[i].Results = append(views[i].Results, item)
		}
	}
	return views
}
