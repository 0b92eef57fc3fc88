package matcher

import (
	"strings"

	"github.com/Rannielson/analisefinanceiro/internal/domain/normalize"
)

// costCenterMinLen is the length floor for containment: shorter
// strings match too many unrelated centers ("AB" inside "ABCDEF").
const costCenterMinLen = 3

// CostCenterMatch reports whether two cost centers name the same
// center under the flexible containment rule: both empty, or the
// shorter normalized string (length >= 3) is a substring of the
// longer one. Comparison is case and accent insensitive, so
// "SEGBRASIL RECIFE" matches "Recife". The rule tolerates branch
// abbreviations between ledgers and is symmetric in evaluation.
func CostCenterMatch(a, b string) bool {
	an := normalize.CostCenter(a)
	bn := normalize.CostCenter(b)

	if an == "" && bn == "" {
		return true
	}
	if an == "" || bn == "" {
		return false
	}

	shorter, longer := an, bn
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) >= costCenterMinLen && strings.Contains(longer, shorter)
}
