// Package normalize converts raw spreadsheet values into canonical
// typed values: currency amounts, payment dates, supplier names and
// cost centers. Every function is pure, total and idempotent:
// malformed input degrades to a zero value instead of failing, so a
// reconciliation run always completes.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Corporate suffixes stripped from supplier names before comparison.
var corporateSuffixes = regexp.MustCompile(`(?i)\b(ltda|me|eireli|epp|s\.?a\.?|s\.?a\.?e\.?|s/s)\b`)

var (
	currencyMarker = regexp.MustCompile(`(?i)R\$\s*`)
	whitespace     = regexp.MustCompile(`\s+`)

	dayMonthYear = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dayMonth     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
	isoPrefix    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// DisplayLayout is the DD/MM form used everywhere a date is shown.
const DisplayLayout = "02/01"

// Amount converts a raw cell value to a non-negative float64.
//
// Native numeric types pass through. Strings may carry an "R$" marker
// and use Brazilian formatting: "." as thousands separator, "," as
// decimal separator ("1.234,56" -> 1234.56). Anything unparseable,
// nil included, yields 0.0.
func Amount(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0.0
	case float64:
		return absFinite(v)
	case float32:
		return absFinite(float64(v))
	case int:
		return absFinite(float64(v))
	case int64:
		return absFinite(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0.0
		}
		s = currencyMarker.ReplaceAllString(s, "")
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0.0
		}
		return absFinite(d.InexactFloat64())
	default:
		return Amount(fmt.Sprint(raw))
	}
}

func absFinite(v float64) float64 {
	if v != v || v > 1e308 || v < -1e308 {
		return 0.0
	}
	if v < 0 {
		return -v
	}
	return v
}

// Date converts a raw cell value to a calendar date plus its DD/MM
// display form. String inputs are tried, in order, as DD/MM/YYYY,
// DD/MM (year taken from referenceYear, or the current year when
// zero) and a YYYY-MM-DD prefix. A value that matches no pattern, or
// names an impossible calendar day, returns ok=false with the trimmed
// raw text as display, so the raw string degrades gracefully instead
// of disappearing.
func Date(raw any, referenceYear int) (t time.Time, display string, ok bool) {
	if referenceYear == 0 {
		referenceYear = time.Now().Year()
	}

	switch v := raw.(type) {
	case nil:
		return time.Time{}, "", false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, "", false
		}
		return v, v.Format(DisplayLayout), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, "", false
		}
		if m := dayMonthYear.FindStringSubmatch(s); m != nil {
			return calendarDate(atoi(m[3]), atoi(m[2]), atoi(m[1]), s)
		}
		if m := dayMonth.FindStringSubmatch(s); m != nil {
			return calendarDate(referenceYear, atoi(m[2]), atoi(m[1]), s)
		}
		if m := isoPrefix.FindStringSubmatch(s); m != nil {
			return calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), s)
		}
		return time.Time{}, s, false
	default:
		return Date(fmt.Sprint(raw), referenceYear)
	}
}

// calendarDate builds a date and rejects values time.Date would roll
// over (e.g. 31/02 becoming 02/03 or 03/03).
func calendarDate(year, month, day int, raw string) (time.Time, string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, raw, false
	}
	return t, t.Format(DisplayLayout), true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// Name lowercases, trims and collapses internal whitespace. When
// stripSuffixes is set, whole-word corporate suffixes (ltda, me,
// eireli, epp, s.a., s/s) are removed as well.
func Name(raw string, stripSuffixes bool) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = whitespace.ReplaceAllString(s, " ")
	if stripSuffixes {
		s = corporateSuffixes.ReplaceAllString(s, "")
		s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	}
	return s
}

// CostCenter trims, lowercases and strips diacritics, so that
// "João Pessoa" compares equal to "joao pessoa".
func CostCenter(raw string) string {
	return StripAccents(strings.ToLower(strings.TrimSpace(raw)))
}

// StripAccents removes combining marks after canonical decomposition.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatBR renders a value in Brazilian currency style:
// 1234.5 -> "R$ 1.234,50".
func FormatBR(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return "R$ " + sign + b.String() + "," + fracPart
}

// FormatDiff renders an amount difference with a decimal comma, the
// form used inside divergence alert messages ("0.02" -> "0,02").
func FormatDiff(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}
