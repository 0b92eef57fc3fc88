package matcher

import (
	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
)

// Match statuses, reproduced verbatim on the wire.
const (
	StatusOK        = "ok"
	StatusDivergent = "divergente"
	StatusNotFound  = "nao_encontrado"
)

// Fixed not-found messages, one per matching policy.
const (
	msgNotFound           = "Nenhum match encontrado na planilha de comparação"
	msgNotFoundCostCenter = "Nenhum match encontrado (data + valor + centro de custo)"
)

// Config holds matching parameters.
type Config struct {
	// Tolerance is the maximum absolute amount difference for two
	// records to be considered a value match.
	Tolerance float64

	// Selector decides which eligible candidate wins when several
	// qualify. Nil means FirstFit.
	Selector CandidateSelector
}

// DefaultConfig returns the production defaults: one-cent tolerance,
// first eligible candidate wins.
func DefaultConfig() Config {
	return Config{
		Tolerance: 0.01,
		Selector:  FirstFit{},
	}
}

// MatchResult is the outcome for a single reference record.
type MatchResult struct {
	Status     string
	Reference  ledger.Record
	Comparison *ledger.Record

	// NameSimilarity is informational only; it never influences which
	// records pair up.
	NameSimilarity *float64

	// AmountDiff is set only on divergent results, rounded to cents.
	AmountDiff *float64

	Alert string
}

// Candidate is an unconsumed comparison record offered to the
// selection strategy, in its original sheet order.
type Candidate struct {
	Index  int
	Record ledger.Record
}

// CandidateSelector picks the winning candidate among those passing
// the policy predicate. Implementations must be deterministic: the
// same reference and candidate slice always yield the same choice.
type CandidateSelector interface {
	Select(ref ledger.Record, eligible []Candidate) (Candidate, bool)
}

// FirstFit takes the first eligible candidate in original order. When
// several same-day candidates tie on amount the earliest row wins;
// no closeness ranking is applied.
type FirstFit struct{}

// Select implements CandidateSelector.
func (FirstFit) Select(_ ledger.Record, eligible []Candidate) (Candidate, bool) {
	if len(eligible) == 0 {
		return Candidate{}, false
	}
	return eligible[0], true
}
