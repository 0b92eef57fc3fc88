// Package ledger defines the canonical payment record shared by the
// matchers and the divergence checks, and builds it from raw
// spreadsheet rows.
package ledger

import (
	"time"

	"github.com/Rannielson/analisefinanceiro/internal/domain/normalize"
)

// RawRow is a single spreadsheet row after column identification.
// DateRaw and AmountRaw stay untyped because source cells may carry
// either native values or formatted strings; everything else is text.
type RawRow struct {
	Supplier   string
	DateRaw    any
	AmountRaw  any
	CostCenter string
	Department string
}

// Record is a normalized payment entry. Records are immutable after
// construction; OriginIndex is the row's position in its source
// sequence and is what the matchers use to break ties and mark
// consumption.
type Record struct {
	Supplier       string
	SupplierNorm   string
	Amount         float64
	Date           time.Time
	HasDate        bool
	DateDisplay    string
	CostCenter     string
	CostCenterNorm string
	Department     string
	OriginIndex    int
}

// FromRow normalizes one raw row. It never fails: missing or garbage
// fields degrade to zero values.
func FromRow(row RawRow, index int, referenceYear int) Record {
	date, display, ok := normalize.Date(row.DateRaw, referenceYear)

	return Record{
		Supplier:       row.Supplier,
		SupplierNorm:   normalize.Name(row.Supplier, true),
		Amount:         normalize.Amount(row.AmountRaw),
		Date:           date,
		HasDate:        ok,
		DateDisplay:    display,
		CostCenter:     row.CostCenter,
		CostCenterNorm: normalize.CostCenter(row.CostCenter),
		Department:     row.Department,
		OriginIndex:    index,
	}
}

// Build normalizes a whole sheet, preserving row order.
func Build(rows []RawRow, referenceYear int) []Record {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		records = append(records, FromRow(row, i, referenceYear))
	}
	return records
}
