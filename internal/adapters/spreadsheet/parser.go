// Package spreadsheet loads .xlsx payment sheets and identifies which
// of the two known header dialects a sheet uses, mapping its columns
// into raw ledger rows. Layout identification is the one structural
// failure of the whole pipeline: a sheet whose headers match neither
// dialect is rejected before any record reaches the core.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
)

// Layout identifies a recognized sheet dialect.
type Layout string

const (
	// LayoutModel1 is the reference ledger dialect
	// (FORNECEDOR/COLABORADOR, DATA, VALOR, ...).
	LayoutModel1 Layout = "modelo1"

	// LayoutModel2 is the comparison ledger dialect
	// (Fornecedor - nome, Data pagamento, ...).
	LayoutModel2 Layout = "modelo2"
)

// ErrUnknownLayout is returned when a sheet's headers match neither
// dialect. The message is part of the wire format.
var ErrUnknownLayout = errors.New("não foi possível identificar o modelo da planilha. Verifique os cabeçalhos")

// minHeaderHits is how many key columns a dialect needs before it is
// considered identified.
const minHeaderHits = 3

// Known header names per dialect, matched case-insensitively after
// trimming. Later options are fallbacks for the same column.
var (
	model1Columns = columnSet{
		{"fornecedor/colaborador"},
		{"data"},
		{"valor"},
		{"centro de custo"},
		{"departamento"},
	}
	model2Columns = columnSet{
		{"fornecedor - nome"},
		{"data pagamento"},
		{"valor pagamento"},
		{"centro custo", "centro de custo"},
		{"descrição", "suboperação"},
	}
)

// columnSet lists, per logical column, the accepted header spellings.
type columnSet [][]string

// Parse reads an xlsx workbook and returns its rows mapped into the
// internal row shape, plus the detected layout.
func Parse(r io.Reader) ([]ledger.RawRow, Layout, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("abrindo planilha: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", ErrUnknownLayout
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, "", fmt.Errorf("lendo linhas da planilha: %w", err)
	}
	if len(rows) == 0 {
		return nil, "", ErrUnknownLayout
	}

	headers := rows[0]
	layout, ok := DetectLayout(headers)
	if !ok {
		return nil, "", ErrUnknownLayout
	}

	columns := model1Columns
	if layout == LayoutModel2 {
		columns = model2Columns
	}
	mapping := mapColumns(headers, columns)

	raw := make([]ledger.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if emptyRow(cells) {
			continue
		}
		raw = append(raw, ledger.RawRow{
			Supplier:   cellAt(cells, mapping[0]),
			DateRaw:    cellAt(cells, mapping[1]),
			AmountRaw:  cellAt(cells, mapping[2]),
			CostCenter: cellAt(cells, mapping[3]),
			Department: cellAt(cells, mapping[4]),
		})
	}

	return raw, layout, nil
}

// DetectLayout inspects header cells and picks the dialect with the
// most key-column hits, requiring at least three. Model 1 wins ties.
func DetectLayout(headers []string) (Layout, bool) {
	c1 := countHits(headers, model1Columns)
	c2 := countHits(headers, model2Columns)

	if c1 >= minHeaderHits && c1 >= c2 {
		return LayoutModel1, true
	}
	if c2 >= minHeaderHits && c2 >= c1 {
		return LayoutModel2, true
	}
	return "", false
}

func countHits(headers []string, columns columnSet) int {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	hits := 0
	for _, options := range columns {
		for _, opt := range options {
			if present[opt] {
				hits++
				break
			}
		}
	}
	return hits
}

// mapColumns resolves each logical column to a cell index, -1 when the
// sheet lacks it (missing columns degrade to empty values).
func mapColumns(headers []string, columns columnSet) []int {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, exists := byName[name]; !exists {
			byName[name] = i
		}
	}

	mapping := make([]int, len(columns))
	for i, options := range columns {
		mapping[i] = -1
		for _, opt := range options {
			if idx, ok := byName[opt]; ok {
				mapping[i] = idx
				break
			}
		}
	}
	return mapping
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
