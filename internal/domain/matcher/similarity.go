package matcher

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// NameSimilarity returns a [0,1] similarity ratio between two
// normalized supplier names. Display only: pairing never looks at it.
func NameSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	return levenshtein.RatioForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
}
