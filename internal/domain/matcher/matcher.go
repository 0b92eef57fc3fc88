// Package matcher pairs reference records with comparison records
// under two policies: value+date, and value+date+cost-center.
//
// Comparison records are bucketed by display date; each reference
// record, in sheet order, scans its bucket's unconsumed candidates and
// the configured selector picks the winner (first fit by default). A
// consumed candidate never pairs again, so the assignment is 1:1.
package matcher

import (
	"math"

	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
	"github.com/Rannielson/analisefinanceiro/internal/domain/normalize"
)

// predicate reports whether a candidate is eligible for a reference
// record under the active policy.
type predicate func(ref, cand ledger.Record, tolerance float64) bool

// Matcher runs one matching policy over a pair of record sets. A
// Matcher is stateless across runs: the consumed set lives inside
// each Run call.
type Matcher struct {
	cfg         Config
	eligible    predicate
	notFoundMsg string
}

// New returns the value+date matcher: candidates on the same display
// date whose amount differs by at most the tolerance. Supplier names
// are never examined.
func New(cfg Config) *Matcher {
	return newMatcher(cfg, amountWithinTolerance, msgNotFound)
}

// NewCostCenter returns the value+date+cost-center matcher: the
// value+date rule plus the flexible cost-center containment predicate.
func NewCostCenter(cfg Config) *Matcher {
	return newMatcher(cfg, func(ref, cand ledger.Record, tol float64) bool {
		return amountWithinTolerance(ref, cand, tol) &&
			CostCenterMatch(ref.CostCenterNorm, cand.CostCenterNorm)
	}, msgNotFoundCostCenter)
}

func newMatcher(cfg Config, eligible predicate, notFoundMsg string) *Matcher {
	if cfg.Selector == nil {
		cfg.Selector = FirstFit{}
	}
	return &Matcher{cfg: cfg, eligible: eligible, notFoundMsg: notFoundMsg}
}

func amountWithinTolerance(ref, cand ledger.Record, tolerance float64) bool {
	return math.Abs(ref.Amount-cand.Amount) <= tolerance
}

// Run produces one MatchResult per reference record, in reference
// order. comparison records are consumed at most once per run.
func (m *Matcher) Run(reference, comparison []ledger.Record) []MatchResult {
	byDate := make(map[string][]Candidate)
	for i, rec := range comparison {
		byDate[rec.DateDisplay] = append(byDate[rec.DateDisplay], Candidate{Index: i, Record: rec})
	}

	used := make(map[int]bool, len(comparison))
	results := make([]MatchResult, 0, len(reference))

	for _, ref := range reference {
		var eligible []Candidate
		for _, cand := range byDate[ref.DateDisplay] {
			if used[cand.Index] {
				continue
			}
			if m.eligible(ref, cand.Record, m.cfg.Tolerance) {
				eligible = append(eligible, cand)
			}
		}

		chosen, ok := m.cfg.Selector.Select(ref, eligible)
		if !ok {
			results = append(results, MatchResult{
				Status:    StatusNotFound,
				Reference: ref,
				Alert:     m.notFoundMsg,
			})
			continue
		}

		used[chosen.Index] = true
		results = append(results, classify(ref, chosen.Record, m.cfg.Tolerance))
	}

	return results
}

// classify builds the result for a paired reference/comparison couple.
// A difference strictly greater than the tolerance is divergent;
// exactly the tolerance is still ok.
func classify(ref, comp ledger.Record, tolerance float64) MatchResult {
	diff := math.Abs(ref.Amount - comp.Amount)

	status := StatusOK
	alert := ""
	var amountDiff *float64
	if diff > tolerance {
		status = StatusDivergent
		alert = "Valor divergente em R$ " + normalize.FormatDiff(diff)
		rounded := normalize.Round2(diff)
		amountDiff = &rounded
	}

	similarity := normalize.Round2(NameSimilarity(ref.SupplierNorm, comp.SupplierNorm))

	return MatchResult{
		Status:         status,
		Reference:      ref,
		Comparison:     &comp,
		NameSimilarity: &similarity,
		AmountDiff:     amountDiff,
		Alert:          alert,
	}
}
