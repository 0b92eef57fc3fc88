package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRow(t *testing.T) {
	row := RawRow{
		Supplier:   "  ACME Comercio LTDA ",
		DateRaw:    "10/05",
		AmountRaw:  "R$ 1.234,56",
		CostCenter: " São Paulo ",
		Department: "Financeiro",
	}

	rec := FromRow(row, 7, 2026)

	assert.Equal(t, "  ACME Comercio LTDA ", rec.Supplier)
	assert.Equal(t, "acme comercio", rec.SupplierNorm)
	assert.InDelta(t, 1234.56, rec.Amount, 0.0001)
	require.True(t, rec.HasDate)
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, "10/05", rec.DateDisplay)
	assert.Equal(t, " São Paulo ", rec.CostCenter)
	assert.Equal(t, "sao paulo", rec.CostCenterNorm)
	assert.Equal(t, "Financeiro", rec.Department)
	assert.Equal(t, 7, rec.OriginIndex)
}

func TestFromRow_GarbageNeverFails(t *testing.T) {
	rec := FromRow(RawRow{
		Supplier:  "",
		DateRaw:   "não é data",
		AmountRaw: "???",
	}, 0, 2026)

	assert.Equal(t, 0.0, rec.Amount)
	assert.False(t, rec.HasDate)
	assert.Equal(t, "não é data", rec.DateDisplay)
	assert.Equal(t, "", rec.SupplierNorm)
	assert.Equal(t, "", rec.CostCenterNorm)
}

func TestFromRow_EmptyRow(t *testing.T) {
	rec := FromRow(RawRow{}, 3, 0)

	assert.Equal(t, 0.0, rec.Amount)
	assert.False(t, rec.HasDate)
	assert.Equal(t, "", rec.DateDisplay)
	assert.Equal(t, 3, rec.OriginIndex)
}

func TestBuild_PreservesOrder(t *testing.T) {
	rows := []RawRow{
		{Supplier: "a", AmountRaw: "10,00", DateRaw: "01/05"},
		{Supplier: "b", AmountRaw: "20,00", DateRaw: "02/05"},
		{Supplier: "c", AmountRaw: "30,00", DateRaw: "03/05"},
	}

	records := Build(rows, 2026)

	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, i, rec.OriginIndex)
	}
	assert.Equal(t, "a", records[0].Supplier)
	assert.Equal(t, "c", records[2].Supplier)
}
