// Package auditor runs the divergence checks that sit beside the
// matchers: missing-field alerts on the reference set and per-day
// count/total reconciliation between both sets.
package auditor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
	"github.com/Rannielson/analisefinanceiro/internal/domain/normalize"
)

// StatusMissingInfo marks a data-quality alert entry in the combined
// result list.
const StatusMissingInfo = "info_faltante"

const msgMissingCostCenter = "Centro de custo não preenchido"

// Tolerance for the per-day total comparison, in currency units.
const dailyTotalTolerance = 0.01

// DailyAlert is a human-readable divergence statement about one date.
type DailyAlert struct {
	Date    string `json:"data"`
	Message string `json:"mensagem"`
}

// MissingInfo flags a reference record lacking a critical field.
type MissingInfo struct {
	Reference ledger.Record
	Alert     string
}

// DayGroup is the per-day aggregate comparison between the two sets.
type DayGroup struct {
	Date      string
	RefCount  int
	CompCount int
	RefTotal  float64
	CompTotal float64
	Divergent bool
}

// CheckMissingInfo emits one alert per reference record whose cost
// center is empty after trimming. Runs against the reference set only;
// the comparison set is never checked.
func CheckMissingInfo(reference []ledger.Record) []MissingInfo {
	var alerts []MissingInfo
	for _, rec := range reference {
		if strings.TrimSpace(rec.CostCenter) == "" {
			alerts = append(alerts, MissingInfo{
				Reference: rec,
				Alert:     msgMissingCostCenter,
			})
		}
	}
	return alerts
}

// dayTotals accumulates count and amount per display date, skipping
// records with an empty date.
type dayTotals struct {
	count int
	total float64
}

func groupTotals(records []ledger.Record) map[string]dayTotals {
	out := make(map[string]dayTotals)
	for _, rec := range records {
		d := strings.TrimSpace(rec.DateDisplay)
		if d == "" {
			continue
		}
		agg := out[d]
		agg.count++
		agg.total += rec.Amount
		out[d] = agg
	}
	return out
}

// unionDates returns the dates present in either set, ordered by
// parsed calendar date; displays that fail to parse sort
// lexicographically after all parseable ones. (Sorting the raw DD/MM
// strings would misorder across month boundaries.)
func unionDates(ref, comp map[string]dayTotals, referenceYear int) []string {
	seen := make(map[string]bool)
	var dates []string
	for d := range ref {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	for d := range comp {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	parsed := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		if t, _, ok := normalize.Date(d, referenceYear); ok {
			parsed[d] = t
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		ti, iok := parsed[dates[i]]
		tj, jok := parsed[dates[j]]
		switch {
		case iok && jok:
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
			return dates[i] < dates[j]
		case iok:
			return true
		case jok:
			return false
		default:
			return dates[i] < dates[j]
		}
	})

	return dates
}

// CheckDailyAlerts compares per-day count and total between the two
// sets. The count and total conditions fire independently, so one date
// can produce two alerts.
func CheckDailyAlerts(reference, comparison []ledger.Record, referenceYear int) []DailyAlert {
	refDays := groupTotals(reference)
	compDays := groupTotals(comparison)

	var alerts []DailyAlert
	for _, date := range unionDates(refDays, compDays, referenceYear) {
		r := refDays[date]
		c := compDays[date]

		if r.count != c.count {
			alerts = append(alerts, DailyAlert{
				Date:    date,
				Message: fmt.Sprintf("Quantidade divergente: Ref=%d, Comp=%d", r.count, c.count),
			})
		}

		if math.Abs(r.total-c.total) > dailyTotalTolerance {
			alerts = append(alerts, DailyAlert{
				Date: date,
				Message: fmt.Sprintf("Total do dia divergente: Ref=%s | Comp=%s",
					normalize.FormatBR(r.total), normalize.FormatBR(c.total)),
			})
		}
	}
	return alerts
}

// GroupByDate produces one DayGroup per date in the union of both
// sets, in the same order CheckDailyAlerts walks them, with rounded
// totals and the divergence flag (count mismatch or total mismatch).
func GroupByDate(reference, comparison []ledger.Record, referenceYear int) []DayGroup {
	refDays := groupTotals(reference)
	compDays := groupTotals(comparison)

	var groups []DayGroup
	for _, date := range unionDates(refDays, compDays, referenceYear) {
		r := refDays[date]
		c := compDays[date]

		groups = append(groups, DayGroup{
			Date:      date,
			RefCount:  r.count,
			CompCount: c.count,
			RefTotal:  normalize.Round2(r.total),
			CompTotal: normalize.Round2(c.total),
			Divergent: r.count != c.count || math.Abs(r.total-c.total) > dailyTotalTolerance,
		})
	}
	return groups
}
